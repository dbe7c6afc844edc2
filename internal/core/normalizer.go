package core

import (
	"strings"
	"unicode"
)

// Normalize converts raw email text into its canonical scoring form:
// lowercase, runs of whitespace collapsed to single spaces, and
// punctuation stripped from word boundaries so that "urgente!" and
// "urgente" tokenize identically. It is a pure function and never
// fails; empty input yields an empty word list.
func Normalize(raw string) NormalizedText {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return NormalizedText{}
	}

	fields := strings.Fields(lowered)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := trimBoundaryPunct(f)
		if w == "" {
			continue
		}
		words = append(words, w)
	}

	return NormalizedText{
		Clean: strings.Join(words, " "),
		Words: words,
	}
}

// trimBoundaryPunct removes punctuation adjacent to the edges of a
// token (commas, periods, exclamation marks and similar) while leaving
// interior characters untouched.
func trimBoundaryPunct(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
