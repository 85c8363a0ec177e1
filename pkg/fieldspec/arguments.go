package fieldspec

import "strings"

// ExtractArguments turns a raw span into an argument list. Parts are separated
// by commas outside quotes, trimmed, and stripped of one pair of matching
// quotes. An absent span yields absent arguments; a blank span yields an empty
// list.
func ExtractArguments(span Span) Args {
	if !span.Present {
		return NoArgs()
	}
	if strings.TrimSpace(span.Text) == "" {
		return ArgsOf()
	}
	parts := splitArguments(span.Text)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		values = append(values, RemoveQuote(strings.TrimSpace(part)))
	}
	return ArgsOf(values...)
}

// splitArguments splits on commas, ignoring commas inside a quoted section. An
// unterminated quote runs to the end of the span.
func splitArguments(text string) []string {
	var (
		parts []string
		quote rune
		start int
	)
	for idx, ch := range text {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ',':
			parts = append(parts, text[start:idx])
			start = idx + 1
		}
	}
	return append(parts, text[start:])
}

// RemoveQuote strips one pair of matching single or double quotes. Values
// whose ends do not carry the same quote character are returned unchanged.
func RemoveQuote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first != last || (first != '\'' && first != '"') {
		return value
	}
	return value[1 : len(value)-1]
}

// ParseBool is the canonical boolean recognizer used for checkbox defaults.
// It accepts true/false, yes/no, on/off and 1/0 in any case; anything else is
// false.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}

func normalizeString(value string) string {
	return strings.TrimSpace(RemoveQuote(value))
}
