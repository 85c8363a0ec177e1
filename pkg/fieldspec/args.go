package fieldspec

import (
	"encoding/json"
	"slices"
)

// Args is the argument list attached to a token. A token written without
// parentheses has absent arguments, which is not the same as an empty list
// written as "()".
type Args struct {
	values  []string
	present bool
}

// NoArgs returns the absent argument list.
func NoArgs() Args {
	return Args{}
}

// ArgsOf returns a present argument list holding values. ArgsOf() is the empty
// list.
func ArgsOf(values ...string) Args {
	return Args{values: slices.Clone(values), present: true}
}

// Present reports whether the token carried a parenthesised list.
func (a Args) Present() bool {
	return a.present
}

// Len returns the number of arguments; zero when absent.
func (a Args) Len() int {
	return len(a.values)
}

// Values returns a copy of the arguments, nil when absent.
func (a Args) Values() []string {
	if !a.present {
		return nil
	}
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

// First returns the first argument when there is one.
func (a Args) First() (string, bool) {
	if len(a.values) == 0 {
		return "", false
	}
	return a.values[0], true
}

// Equal reports whether both lists have the same presence and values.
func (a Args) Equal(other Args) bool {
	return a.present == other.present && slices.Equal(a.values, other.values)
}

// MarshalJSON encodes absent arguments as null and present ones as an array.
func (a Args) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	if a.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.values)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (a *Args) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Args{}
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*a = ArgsOf(values...)
	return nil
}
