package render

import (
	"strings"

	"github.com/goliatone/go-formspec/pkg/model"
)

// FieldState is what a renderer knows about one field's interaction state.
type FieldState struct {
	Touched bool
	Errors  []string
}

// StateFor extracts the state of the named field from the options.
func StateFor(options RenderOptions, name string) FieldState {
	touched := options.Touched == nil || options.Touched[name]
	return FieldState{
		Touched: touched,
		Errors:  normalizeMessages(options.Errors[name]),
	}
}

// HasError reports whether a field should display its error: it must have
// been touched and carry at least one message.
func HasError(state FieldState) bool {
	return state.Touched && len(state.Errors) > 0
}

// ErrorMessage returns the message to display for a field, or an empty string
// when HasError is false.
func ErrorMessage(state FieldState) string {
	if !HasError(state) {
		return ""
	}
	return state.Errors[0]
}

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload assigns messages to the form's fields by name. Unknown keys
// and FormErrorKey become form-level messages so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		names[field.Name] = struct{}{}
	}

	for key, messages := range payload {
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		name := strings.TrimSpace(key)
		if _, ok := names[name]; !ok || name == FormErrorKey {
			mapping.Form = append(mapping.Form, cleaned...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], cleaned...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
