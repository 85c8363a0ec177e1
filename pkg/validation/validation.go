package validation

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/model"
)

// Issue is one validation failure.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors groups issue messages by field, ready for render.RenderOptions.
func (r Result) Errors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// Validate checks submitted values against the form's field metadata.
// Fields without a resolved component are not checked.
func Validate(form model.FormModel, values map[string]any) Result {
	result := Result{Valid: true}
	for _, field := range form.Fields {
		value, present := values[field.Name]
		for _, message := range CheckField(field, value, present) {
			result.Issues = append(result.Issues, Issue{Field: field.Name, Message: message})
		}
	}
	result.Valid = len(result.Issues) == 0
	return result
}

// CheckField returns the messages for one value. present is false when the
// value was not submitted at all.
func CheckField(field model.Field, value any, present bool) []string {
	label := fieldLabel(field)

	switch field.Component() {
	case fieldspec.ComponentText, fieldspec.ComponentTextarea:
		if field.Metadata.Required && strings.TrimSpace(text(value, present)) == "" {
			return []string{label + " is required"}
		}
	case fieldspec.ComponentSelect:
		choice := strings.TrimSpace(text(value, present))
		if choice == "" {
			if field.Metadata.Required {
				return []string{label + " is required"}
			}
			return nil
		}
		if options := field.Options(); len(options) > 0 && !slices.Contains(options, choice) {
			return []string{fmt.Sprintf("%s must be one of: %s", label, strings.Join(options, ", "))}
		}
	case fieldspec.ComponentCheckbox:
		if !present || value == nil {
			return nil
		}
		if _, ok := value.(bool); ok {
			return nil
		}
		if !isBoolLike(fmt.Sprint(value)) {
			return []string{label + " must be a yes/no value"}
		}
	case fieldspec.ComponentNone:
	}
	return nil
}

// Decode turns an HTML form submission into typed values: checkboxes become
// booleans (absent means false) and every other field a string.
func Decode(form model.FormModel, submitted url.Values) map[string]any {
	out := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		raw, present := submitted[field.Name]
		if field.Component() == fieldspec.ComponentCheckbox {
			out[field.Name] = present && len(raw) > 0 && fieldspec.ParseBool(raw[len(raw)-1])
			continue
		}
		if !present {
			if field.Component().Resolved() {
				out[field.Name] = ""
			}
			continue
		}
		out[field.Name] = submitted.Get(field.Name)
	}
	return out
}

// Diagnostics reports the field-spec diagnostics of a form as issues, so a
// definition can be checked before it is served.
func Diagnostics(form model.FormModel) Result {
	result := Result{Valid: true}
	for _, diag := range form.Diagnostics() {
		result.Issues = append(result.Issues, Issue{
			Field:   diag.Field,
			Message: diag.Diagnostic.String(),
		})
	}
	result.Valid = len(result.Issues) == 0
	return result
}

func fieldLabel(field model.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.Name
}

func text(value any, present bool) string {
	if !present || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func isBoolLike(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "true", "false", "yes", "no", "on", "off", "1", "0":
		return true
	default:
		return false
	}
}
