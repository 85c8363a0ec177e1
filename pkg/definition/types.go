package definition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormNotFound is returned when a form id is not defined.
var ErrFormNotFound = errors.New("definition: form not found")

// Field is one named field and its specification line.
type Field struct {
	Name  string            `json:"name" yaml:"name"`
	Spec  string            `json:"spec" yaml:"spec"`
	Hints map[string]string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Form groups ordered fields under an id.
type Form struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Action      string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string  `json:"method,omitempty" yaml:"method,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`

	// Source records the file the form was read from, when any.
	Source string `json:"-" yaml:"-"`
}

// Validate checks ids and field names. Specification lines are not
// interpreted here; an empty line is still rejected because it can never
// describe a field.
func (f Form) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("definition: form id is required")
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("definition: form %q field at index %d has no name", f.ID, idx)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("definition: form %q defines duplicate field %q", f.ID, name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(field.Spec) == "" {
			return fmt.Errorf("definition: form %q field %q has an empty spec", f.ID, name)
		}
	}
	return nil
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := f
	if f.Fields != nil {
		out.Fields = make([]Field, len(f.Fields))
		for idx, field := range f.Fields {
			out.Fields[idx] = field.clone()
		}
	}
	return out
}

// Specs returns the specification lines in field order.
func (f Form) Specs() []string {
	specs := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		specs = append(specs, field.Spec)
	}
	return specs
}

func (f Field) clone() Field {
	out := f
	if len(f.Hints) > 0 {
		out.Hints = make(map[string]string, len(f.Hints))
		for k, v := range f.Hints {
			out.Hints[k] = v
		}
	}
	return out
}
