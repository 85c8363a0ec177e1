package fieldspec

import (
	"encoding/json"
	"strconv"
)

// Modifier token names.
const (
	TokenLabel       = "label"
	TokenDescription = "description"
	TokenRequired    = "required"
	TokenNotRequired = "not-required"
	TokenDefault     = "default"
)

// DefaultKind tells which variant a Default holds.
type DefaultKind int

const (
	DefaultNone DefaultKind = iota
	DefaultString
	DefaultBool
)

// Default is a field's default value: absent, a string, or a boolean for
// checkboxes.
type Default struct {
	kind DefaultKind
	str  string
	b    bool
}

// StringDefault returns a string default.
func StringDefault(value string) Default {
	return Default{kind: DefaultString, str: value}
}

// BoolDefault returns a boolean default.
func BoolDefault(value bool) Default {
	return Default{kind: DefaultBool, b: value}
}

func (d Default) Kind() DefaultKind { return d.kind }

// IsSet reports whether a default was given.
func (d Default) IsSet() bool { return d.kind != DefaultNone }

// String returns the string default.
func (d Default) String() (string, bool) {
	return d.str, d.kind == DefaultString
}

// Bool returns the boolean default.
func (d Default) Bool() (bool, bool) {
	return d.b, d.kind == DefaultBool
}

// Text renders any default as text, empty when absent.
func (d Default) Text() string {
	switch d.kind {
	case DefaultString:
		return d.str
	case DefaultBool:
		return strconv.FormatBool(d.b)
	default:
		return ""
	}
}

// Value returns the default as a plain Go value, nil when absent.
func (d Default) Value() any {
	switch d.kind {
	case DefaultString:
		return d.str
	case DefaultBool:
		return d.b
	default:
		return nil
	}
}

// Equal reports whether both defaults hold the same variant and value.
func (d Default) Equal(other Default) bool {
	return d == other
}

func (d Default) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value())
}

func (d *Default) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = Default{}
	case bool:
		*d = BoolDefault(v)
	case string:
		*d = StringDefault(v)
	default:
		*d = StringDefault(string(data))
	}
	return nil
}

// FieldMetadata is the structured description of one field.
type FieldMetadata struct {
	Component   Component `json:"component"`
	Arguments   Args      `json:"arguments"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Required    bool      `json:"required"`
	Default     Default   `json:"default"`
}

// LabelText returns the label or an empty string.
func (m FieldMetadata) LabelText() string {
	if m.Label == nil {
		return ""
	}
	return *m.Label
}

// DescriptionText returns the description or an empty string.
func (m FieldMetadata) DescriptionText() string {
	if m.Description == nil {
		return ""
	}
	return *m.Description
}

// buildMetadata applies the modifier rules to the map view. Order matters:
// not-required is read after required, and a checkbox is never required.
func buildMetadata(index TokenMap, component Component, args Args, diags *Diagnostics) FieldMetadata {
	data := FieldMetadata{
		Component: component,
		Arguments: args,
		Required:  false,
	}

	if component == ComponentSelect && !args.Present() {
		diags.Add(ComponentSelect.String(), "Requires arguments")
	}

	if value, ok := firstArgument(index, TokenLabel); ok {
		label := normalizeString(value)
		data.Label = &label
	}
	if value, ok := firstArgument(index, TokenDescription); ok {
		description := normalizeString(value)
		data.Description = &description
	}

	if index.Has(TokenRequired) {
		data.Required = true
	}
	if index.Has(TokenNotRequired) || component == ComponentCheckbox {
		data.Required = false
	}

	if value, ok := firstArgument(index, TokenDefault); ok {
		if component == ComponentCheckbox {
			data.Default = BoolDefault(ParseBool(normalizeString(value)))
		} else {
			data.Default = StringDefault(normalizeString(value))
		}
	}

	return data
}

func firstArgument(index TokenMap, name string) (string, bool) {
	args, ok := index.Args(name)
	if !ok {
		return "", false
	}
	return args.First()
}
