package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formspec/pkg/definition"
)

// Extension keys read from property schemas.
const (
	// SpecExtension carries a field specification used verbatim.
	SpecExtension = "x-fieldspec"
	// OrderExtension positions a property within the form.
	OrderExtension = "x-order"
)

const textareaMinLength = 255

// Forms converts every operation with request body properties into a form
// definition. Forms are ordered by id.
func Forms(doc Document, operations map[string]Operation) []definition.Form {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]definition.Form, 0, len(ids))
	for _, id := range ids {
		form, ok := FormFromOperation(operations[id])
		if !ok {
			continue
		}
		form.Source = doc.Location()
		forms = append(forms, form)
	}
	return forms
}

// FormFromOperation builds a form from the operation's request body. It
// reports false when the body has no properties.
func FormFromOperation(op Operation) (definition.Form, bool) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return definition.Form{}, false
	}

	form := definition.Form{
		ID:          op.ID,
		Title:       op.Summary,
		Description: op.Description,
		Action:      op.Path,
		Method:      op.Method,
	}
	for _, name := range body.PropertyNames() {
		form.Fields = append(form.Fields, definition.Field{
			Name: name,
			Spec: DeriveSpec(body.Properties[name], body.IsRequired(name)),
		})
	}
	return form, true
}

// DeriveSpec returns the x-fieldspec extension when present, and otherwise
// writes a specification from the schema: booleans become checkboxes, enums
// selects, long or "textarea" formatted strings textareas, anything else
// text. Values that cannot be written as an argument are left out.
func DeriveSpec(schema Schema, required bool) string {
	if spec, ok := schema.Extensions[SpecExtension].(string); ok && strings.TrimSpace(spec) != "" {
		return strings.TrimSpace(spec)
	}

	var parts []string
	component := deriveComponent(schema)
	switch component {
	case "select":
		args := make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			if quoted, ok := quoteArgument(fmt.Sprint(value)); ok {
				args = append(args, quoted)
			}
		}
		parts = append(parts, "select("+strings.Join(args, ", ")+")")
	default:
		parts = append(parts, component)
	}

	if title, ok := quoteArgument(schema.Title); ok && strings.TrimSpace(schema.Title) != "" {
		parts = append(parts, "label("+title+")")
	}
	if desc, ok := quoteArgument(schema.Description); ok && strings.TrimSpace(schema.Description) != "" {
		parts = append(parts, "description("+desc+")")
	}
	if required && component != "checkbox" {
		parts = append(parts, "required")
	}
	if schema.Default != nil {
		if value, ok := quoteArgument(fmt.Sprint(schema.Default)); ok {
			parts = append(parts, "default("+value+")")
		}
	}
	return strings.Join(parts, " ")
}

func deriveComponent(schema Schema) string {
	switch {
	case schema.Type == "boolean":
		return "checkbox"
	case len(schema.Enum) > 0:
		return "select"
	case strings.EqualFold(schema.Format, "textarea"):
		return "textarea"
	case schema.MaxLength != nil && *schema.MaxLength > textareaMinLength:
		return "textarea"
	default:
		return "text"
	}
}

// quoteArgument wraps value in the quote character it does not contain.
// Values with both quote characters, a closing parenthesis or a line break
// cannot be expressed in a span.
func quoteArgument(value string) (string, bool) {
	if strings.ContainsAny(value, ")\n\r") {
		return "", false
	}
	switch {
	case !strings.Contains(value, "'"):
		return "'" + value + "'", true
	case !strings.Contains(value, `"`):
		return `"` + value + `"`, true
	default:
		return "", false
	}
}
