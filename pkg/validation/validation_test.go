package validation_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/validation"
)

func signupForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder().Build(definition.Form{
		ID: "signup",
		Fields: []definition.Field{
			{Name: "name", Spec: "text required label('Name')"},
			{Name: "bio", Spec: "textarea"},
			{Name: "plan", Spec: "select('free', 'pro') required label('Plan')"},
			{Name: "terms", Spec: "checkbox required"},
			{Name: "legacy", Spec: "password required"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   []validation.Issue
	}{
		{
			name:   "valid submission",
			values: map[string]any{"name": "Ada", "plan": "pro", "terms": true},
		},
		{
			name:   "missing required values",
			values: map[string]any{"name": "   "},
			want: []validation.Issue{
				{Field: "name", Message: "Name is required"},
				{Field: "plan", Message: "Plan is required"},
			},
		},
		{
			name:   "unknown select option",
			values: map[string]any{"name": "Ada", "plan": "enterprise"},
			want: []validation.Issue{
				{Field: "plan", Message: "Plan must be one of: free, pro"},
			},
		},
		{
			name:   "checkbox must be boolean-like",
			values: map[string]any{"name": "Ada", "plan": "free", "terms": "maybe"},
			want: []validation.Issue{
				{Field: "terms", Message: "Terms must be a yes/no value"},
			},
		},
		{
			name:   "checkbox accepts boolean strings",
			values: map[string]any{"name": "Ada", "plan": "free", "terms": "ON"},
		},
	}

	form := signupForm(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validation.Validate(form, tt.values)
			if diff := cmp.Diff(tt.want, result.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
			if result.Valid != (len(tt.want) == 0) {
				t.Fatalf("valid = %v with issues %+v", result.Valid, result.Issues)
			}
		})
	}
}

func TestResultErrors(t *testing.T) {
	result := validation.Validate(signupForm(t), nil)
	want := map[string][]string{
		"name": {"Name is required"},
		"plan": {"Plan is required"},
	}
	if diff := cmp.Diff(want, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if (validation.Result{Valid: true}).Errors() != nil {
		t.Fatalf("expected nil errors for a valid result")
	}
}

func TestDecode(t *testing.T) {
	got := validation.Decode(signupForm(t), url.Values{
		"name":   {"Ada"},
		"plan":   {"pro"},
		"legacy": {"x"},
		"extra":  {"ignored"},
	})
	want := map[string]any{
		"name":   "Ada",
		"bio":    "",
		"plan":   "pro",
		"terms":  false,
		"legacy": "x",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}

	checked := validation.Decode(signupForm(t), url.Values{"terms": {"on"}})
	if checked["terms"] != true {
		t.Fatalf("expected checked checkbox, got %#v", checked["terms"])
	}
}

func TestDiagnostics(t *testing.T) {
	form, err := model.NewBuilder().Build(definition.Form{
		ID: "f",
		Fields: []definition.Field{
			{Name: "country", Spec: "select required"},
			{Name: "city", Spec: "select()"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	result := validation.Diagnostics(form)
	want := []validation.Issue{{Field: "country", Message: "select: Requires arguments"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
}
