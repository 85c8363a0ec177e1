package vanilla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/model"
)

func componentControlID(formID, name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if formID = strings.TrimSpace(formID); formID != "" {
		return "fs-" + formID + "-" + trimmed
	}
	return "fs-" + trimmed
}

// sanitizeClassList drops the reserved formspec- prefix so hints cannot
// impersonate chrome classes.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "formspec-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// fieldValue resolves the submitted value or the spec default. Checkbox
// values are reported through checked.
func fieldValue(field model.Field, values map[string]any) (value string, checked bool) {
	raw, ok := values[field.Name]
	if field.Component() == fieldspec.ComponentCheckbox {
		if !ok {
			checked, _ = field.Metadata.Default.Bool()
			return "", checked
		}
		switch v := raw.(type) {
		case bool:
			return "", v
		case nil:
			return "", false
		default:
			return "", fieldspec.ParseBool(fmt.Sprint(v))
		}
	}

	if !ok || raw == nil {
		return field.Metadata.Default.Text(), false
	}
	return fmt.Sprint(raw), false
}

// formMethod returns the HTML method attribute and, for verbs HTML forms do
// not support, the value of the _method override.
func formMethod(method string) (attr, override string) {
	switch upper := strings.ToUpper(strings.TrimSpace(method)); upper {
	case "GET":
		return "get", ""
	case "", "POST":
		return "post", ""
	default:
		return "post", upper
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
