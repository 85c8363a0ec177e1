package fieldspec

import (
	"encoding/json"
	"fmt"
)

// Component is the control type selected by a specification. ComponentNone
// means no control type identifier was found.
type Component int

const (
	ComponentNone Component = iota
	ComponentText
	ComponentTextarea
	ComponentSelect
	ComponentCheckbox
)

var componentNames = map[Component]string{
	ComponentText:     "text",
	ComponentTextarea: "textarea",
	ComponentSelect:   "select",
	ComponentCheckbox: "checkbox",
}

// Components lists the closed set of control types in declaration order.
func Components() []Component {
	return []Component{ComponentText, ComponentTextarea, ComponentSelect, ComponentCheckbox}
}

// ParseComponent maps an identifier to its control type. Matching is exact and
// case sensitive.
func ParseComponent(name string) (Component, bool) {
	for _, component := range Components() {
		if componentNames[component] == name {
			return component, true
		}
	}
	return ComponentNone, false
}

// IsComponentName reports whether name selects a control type.
func IsComponentName(name string) bool {
	_, ok := ParseComponent(name)
	return ok
}

// String returns the identifier, or an empty string for ComponentNone.
func (c Component) String() string {
	return componentNames[c]
}

// Resolved reports whether c is one of the control types.
func (c Component) Resolved() bool {
	_, ok := componentNames[c]
	return ok
}

// MarshalJSON encodes the identifier, or null when unresolved.
func (c Component) MarshalJSON() ([]byte, error) {
	if !c.Resolved() {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts an identifier or null.
func (c *Component) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ComponentNone
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	component, ok := ParseComponent(name)
	if !ok {
		return fmt.Errorf("fieldspec: unknown component %q", name)
	}
	*c = component
	return nil
}

// ResolveComponent returns the first control type in source order together
// with the arguments stored for that name in the map view. Both answers refer
// to the same name, so a later duplicate supplies the arguments.
func ResolveComponent(tokens Tokens, index TokenMap) (Component, Args) {
	tok, ok := tokens.First(func(tok Token) bool {
		return IsComponentName(tok.Name)
	})
	if !ok {
		return ComponentNone, NoArgs()
	}
	component, _ := ParseComponent(tok.Name)
	args, _ := index.Args(tok.Name)
	return component, args
}
