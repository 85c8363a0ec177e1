package fieldspec

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractArguments(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want Args
	}{
		{"absent", Span{}, NoArgs()},
		{"empty", Span{Text: "", Present: true}, ArgsOf()},
		{"blank", Span{Text: "   ", Present: true}, ArgsOf()},
		{"single quoted", Span{Text: "'English'", Present: true}, ArgsOf("English")},
		{"double quoted", Span{Text: `"English"`, Present: true}, ArgsOf("English")},
		{"bare words", Span{Text: "true, false", Present: true}, ArgsOf("true", "false")},
		{"trimmed", Span{Text: "  'a' ,  b  ", Present: true}, ArgsOf("a", "b")},
		{"comma inside quotes", Span{Text: "'a, b', \"c,d\"", Present: true}, ArgsOf("a, b", "c,d")},
		{"unmatched quote", Span{Text: "'a", Present: true}, ArgsOf("'a")},
		{"mixed quotes", Span{Text: `'a"`, Present: true}, ArgsOf(`'a"`)},
		{"one layer only", Span{Text: `'"a"'`, Present: true}, ArgsOf(`"a"`)},
		{"trailing comma", Span{Text: "a,", Present: true}, ArgsOf("a", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractArguments(tt.span)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %#v (present=%v), got %#v (present=%v)", tt.want.Values(), tt.want.Present(), got.Values(), got.Present())
			}
		})
	}
}

func TestRemoveQuote(t *testing.T) {
	tests := map[string]string{
		"'a'":   "a",
		`"a"`:   "a",
		"''":    "",
		"'":     "'",
		"a":     "a",
		"'a":    "'a",
		`'a"`:   `'a"`,
		"'a' ":  "'a' ",
		"''a''": "'a'",
	}
	for input, want := range tests {
		if got := RemoveQuote(input); got != want {
			t.Fatalf("RemoveQuote(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "TRUE", " True ", "yes", "on", "1"}
	falsy := []string{"false", "no", "off", "0", "", "maybe"}
	for _, value := range truthy {
		if !ParseBool(value) {
			t.Fatalf("expected %q to be true", value)
		}
	}
	for _, value := range falsy {
		if ParseBool(value) {
			t.Fatalf("expected %q to be false", value)
		}
	}
}

func TestArgsAbsentAndEmptyAreDistinct(t *testing.T) {
	absent, empty := NoArgs(), ArgsOf()
	if absent.Equal(empty) {
		t.Fatalf("absent and empty args must differ")
	}
	if absent.Values() != nil {
		t.Fatalf("absent values should be nil")
	}
	if empty.Values() == nil || len(empty.Values()) != 0 {
		t.Fatalf("empty values should be a non-nil empty slice")
	}

	absentJSON, _ := json.Marshal(absent)
	emptyJSON, _ := json.Marshal(empty)
	if string(absentJSON) != "null" || string(emptyJSON) != "[]" {
		t.Fatalf("unexpected encodings: %s / %s", absentJSON, emptyJSON)
	}
}

func TestArgsValuesAreCopies(t *testing.T) {
	source := []string{"a", "b"}
	args := ArgsOf(source...)
	source[0] = "mutated"

	values := args.Values()
	values[1] = "mutated"

	if diff := cmp.Diff([]string{"a", "b"}, args.Values()); diff != "" {
		t.Fatalf("args mutated (-want +got):\n%s", diff)
	}
}
