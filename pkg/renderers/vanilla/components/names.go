package components

import "github.com/goliatone/go-formspec/pkg/fieldspec"

// Component names registered by NewDefaultRegistry. The first four match the
// field-spec component names; NameNotFound is the fallback placeholder.
const (
	NameText     = "text"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
	NameNotFound = "not_found"
)

// NameFor maps a resolved component to its registry name. Unresolved
// components map to NameNotFound.
func NameFor(component fieldspec.Component) string {
	switch component {
	case fieldspec.ComponentText:
		return NameText
	case fieldspec.ComponentTextarea:
		return NameTextarea
	case fieldspec.ComponentSelect:
		return NameSelect
	case fieldspec.ComponentCheckbox:
		return NameCheckbox
	case fieldspec.ComponentNone:
		return NameNotFound
	default:
		return NameNotFound
	}
}

// PartialKey is the theme partial key that overrides a component template.
func PartialKey(name string) string {
	return "forms." + normalize(name)
}
