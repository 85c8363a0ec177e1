package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field name into a label: it splits on "_", "-",
// whitespace and camelCase boundaries and title-cases each word.
func DefaultLabeler(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	segments := make([]string, 0, len(words))
	for _, word := range words {
		for _, part := range splitCamel(word) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(word string) []string {
	var (
		parts []string
		start int
		prev  rune
	)
	for idx, r := range word {
		if idx > 0 && isBoundary(prev, r) {
			parts = append(parts, word[start:idx])
			start = idx
		}
		prev = r
	}
	return append(parts, word[start:])
}

func isBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	default:
		return false
	}
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}
