package openapi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/openapi"
)

func intPtr(v int) *int { return &v }

func TestDeriveSpec(t *testing.T) {
	tests := []struct {
		name     string
		schema   openapi.Schema
		required bool
		want     string
	}{
		{
			name:   "extension wins",
			schema: openapi.Schema{Type: "string", Extensions: map[string]any{"x-fieldspec": " textarea label('Bio') "}},
			want:   "textarea label('Bio')",
		},
		{
			name:     "required string with title",
			schema:   openapi.Schema{Type: "string", Title: "Full name"},
			required: true,
			want:     "text label('Full name') required",
		},
		{
			name:     "boolean is a checkbox and never required",
			schema:   openapi.Schema{Type: "boolean", Default: true},
			required: true,
			want:     "checkbox default('true')",
		},
		{
			name:   "enum becomes select",
			schema: openapi.Schema{Type: "string", Enum: []any{"draft", "in review, pending", "it's live"}},
			want:   `select('draft', 'in review, pending', "it's live")`,
		},
		{
			name:   "long strings become textareas",
			schema: openapi.Schema{Type: "string", MaxLength: intPtr(1000), Description: "Say (something)"},
			want:   "textarea",
		},
		{
			name:   "textarea format",
			schema: openapi.Schema{Type: "string", Format: "textarea", Description: "About you"},
			want:   "textarea description('About you')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := openapi.DeriveSpec(tt.schema, tt.required); got != tt.want {
				t.Fatalf("DeriveSpec = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerivedSpecsParse(t *testing.T) {
	spec := openapi.DeriveSpec(openapi.Schema{
		Type:  "string",
		Title: "Status",
		Enum:  []any{"draft", "in review, pending", "it's live"},
	}, true)

	meta, diags := fieldspec.Parse(spec)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if meta.Component != fieldspec.ComponentSelect || !meta.Required || meta.LabelText() != "Status" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if diff := cmp.Diff([]string{"draft", "in review, pending", "it's live"}, meta.Arguments.Values()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestForms(t *testing.T) {
	doc := openapi.MustNewDocument(openapi.SourceFromFile("api.yaml"), []byte("openapi: 3.0.0"))
	operations := map[string]openapi.Operation{
		"listPets": {ID: "listPets", Method: "GET", Path: "/pets"},
		"createPet": {
			ID:      "createPet",
			Method:  "POST",
			Path:    "/pets",
			Summary: "Create pet",
			RequestBody: openapi.Schema{
				Type:     "object",
				Required: []string{"name"},
				Properties: map[string]openapi.Schema{
					"vaccinated": {Type: "boolean"},
					"name":       {Type: "string", Extensions: map[string]any{"x-order": float64(1)}},
					"kind":       {Type: "string", Enum: []any{"cat", "dog"}, Extensions: map[string]any{"x-order": 2}},
				},
			},
		},
	}

	forms := openapi.Forms(doc, operations)
	want := []definition.Form{{
		ID:     "createPet",
		Title:  "Create pet",
		Action: "/pets",
		Method: "POST",
		Fields: []definition.Field{
			{Name: "name", Spec: "text required"},
			{Name: "kind", Spec: "select('cat', 'dog')"},
			{Name: "vaccinated", Spec: "checkbox"},
		},
		Source: "api.yaml",
	}}
	if diff := cmp.Diff(want, forms); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSource(t *testing.T) {
	src, err := openapi.ParseSource("https://example.com/openapi.json")
	if err != nil || src.Kind() != openapi.SourceKindURL {
		t.Fatalf("expected URL source, got %v (%v)", src, err)
	}
	src, err = openapi.ParseSource("./specs/../api.yaml")
	if err != nil || src.Kind() != openapi.SourceKindFile || src.Location() != "api.yaml" {
		t.Fatalf("expected cleaned file source, got %v (%v)", src, err)
	}
	if _, err := openapi.ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
	if _, err := openapi.SourceFromURL("ftp://example.com/spec"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
