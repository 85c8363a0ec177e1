package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/model"
)

func contactDefinition() definition.Form {
	return definition.Form{
		ID:     "contact",
		Title:  "Contact",
		Method: "post",
		Source: "forms/contact.yaml",
		Fields: []definition.Field{
			{Name: "full_name", Spec: "text required"},
			{Name: "topic", Spec: "select required label('Topic')", Hints: map[string]string{"cssClass": "wide"}},
			{Name: "newsletter", Spec: "checkbox default('true') required"},
		},
	}
}

func TestBuilderBuild(t *testing.T) {
	form, err := model.NewBuilder().Build(contactDefinition())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.ID != "contact" || form.Method != "POST" || form.Metadata["source"] != "forms/contact.yaml" {
		t.Fatalf("unexpected form header: %+v", form)
	}
	if len(form.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(form.Fields))
	}

	name := form.Fields[0]
	if name.Component() != fieldspec.ComponentText || !name.Metadata.Required {
		t.Fatalf("unexpected name field: %+v", name.Metadata)
	}
	if name.Label != "Full Name" {
		t.Fatalf("expected derived label, got %q", name.Label)
	}

	topic := form.Fields[1]
	if topic.Label != "Topic" || topic.UIHints["cssClass"] != "wide" {
		t.Fatalf("unexpected topic field: %+v", topic)
	}

	newsletter := form.Fields[2]
	if value, ok := newsletter.Metadata.Default.Bool(); !ok || !value {
		t.Fatalf("expected boolean default, got %+v", newsletter.Metadata.Default)
	}
	if newsletter.Metadata.Required {
		t.Fatalf("checkbox must not be required")
	}

	want := []model.FieldDiagnostic{{
		Field:      "topic",
		Diagnostic: fieldspec.Diagnostic{Title: "select", Message: "Requires arguments"},
	}}
	if diff := cmp.Diff(want, form.Diagnostics()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderDefaultsAndLabeler(t *testing.T) {
	builder := model.NewBuilder(model.WithLabeler(strings.ToUpper))
	form, err := builder.Build(definition.Form{
		ID:     "f",
		Fields: []definition.Field{{Name: "email", Spec: "text"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Method != "POST" {
		t.Fatalf("expected default method, got %q", form.Method)
	}
	if form.Fields[0].Label != "EMAIL" {
		t.Fatalf("custom labeler not used: %q", form.Fields[0].Label)
	}
	if form.Metadata != nil {
		t.Fatalf("expected no metadata without a source")
	}
}

func TestBuilderRejectsInvalidDefinition(t *testing.T) {
	_, err := model.NewBuilder().Build(definition.Form{ID: "f", Fields: []definition.Field{{Name: "a"}}})
	if err == nil {
		t.Fatalf("expected error for empty spec")
	}
}

func TestFieldOptions(t *testing.T) {
	form, err := model.NewBuilder().Build(definition.Form{
		ID: "f",
		Fields: []definition.Field{
			{Name: "status", Spec: "select('draft', 'live')"},
			{Name: "title", Spec: "text('ignored')"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"draft", "live"}, form.Fields[0].Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if form.Fields[1].Options() != nil {
		t.Fatalf("non-select fields have no options")
	}
	if _, ok := form.Field("status"); !ok {
		t.Fatalf("field lookup failed")
	}
}

func TestDefaultLabeler(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"email":          "Email",
		"first_name":     "First Name",
		"lastName":       "Last Name",
		"address-line2":  "Address Line 2",
		"  spaced  out ": "Spaced Out",
	}
	for input, want := range tests {
		if got := model.DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
