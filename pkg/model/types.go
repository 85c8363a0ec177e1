package model

import "github.com/goliatone/go-formspec/pkg/fieldspec"

// Field is one interpreted field of a form.
type Field struct {
	Name        string                  `json:"name"`
	Spec        string                  `json:"spec"`
	Label       string                  `json:"label"`
	Metadata    fieldspec.FieldMetadata `json:"metadata"`
	Diagnostics []fieldspec.Diagnostic  `json:"diagnostics,omitempty"`
	UIHints     map[string]string       `json:"uiHints,omitempty"`
}

// Component is a shortcut for f.Metadata.Component.
func (f Field) Component() fieldspec.Component {
	return f.Metadata.Component
}

// Options returns the select options, nil for other components.
func (f Field) Options() []string {
	if f.Metadata.Component != fieldspec.ComponentSelect {
		return nil
	}
	return f.Metadata.Arguments.Values()
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Action      string            `json:"action,omitempty"`
	Method      string            `json:"method"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FieldDiagnostic ties a diagnostic to the field that produced it.
type FieldDiagnostic struct {
	Field string `json:"field"`
	fieldspec.Diagnostic
}

// Diagnostics flattens field diagnostics in field order.
func (m FormModel) Diagnostics() []FieldDiagnostic {
	var out []FieldDiagnostic
	for _, field := range m.Fields {
		for _, diag := range field.Diagnostics {
			out = append(out, FieldDiagnostic{Field: field.Name, Diagnostic: diag})
		}
	}
	return out
}

// Field looks a field up by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
