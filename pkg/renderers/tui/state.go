package tui

import (
	"github.com/goliatone/go-formspec/pkg/render"
)

// State tracks collected answers and the error state of each field.
type State struct {
	values  map[string]any
	options render.RenderOptions
}

// NewState seeds the state with the prefilled values and errors of options.
func NewState(options render.RenderOptions) *State {
	values := make(map[string]any, len(options.Values))
	for key, value := range options.Values {
		values[key] = value
	}
	return &State{values: values, options: options}
}

// Values returns the collected answers (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Value returns the answer recorded for name.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[name]
	return value, ok
}

// SetValue records an answer.
func (s *State) SetValue(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}

// Field returns the render state of a field.
func (s *State) Field(name string) render.FieldState {
	return render.StateFor(s.options, name)
}
