// internal/nlp/features.go
package nlp

import "strings"

// Features is the typed feature bag produced by the lexical extractor for one
// utterance. All values are lower-cased; slices preserve extraction order.
type Features struct {
	Topics     []string `json:"topics"`
	Nouns      []string `json:"nouns"`
	Verbs      []string `json:"verbs"`
	Adjectives []string `json:"adjectives"`
	Terms      []string `json:"terms"`
}

// Normalize lower-cases and trims an utterance. Every scorer that does substring
// matching works on the normalized form so catalogs can be declared lower-case.
func Normalize(utterance string) string {
	return strings.ToLower(strings.TrimSpace(utterance))
}

// Words splits a normalized utterance into plain words, dropping punctuation
// glued to word boundaries.
func Words(utterance string) []string {
	fields := strings.FieldsFunc(Normalize(utterance), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', ';', ':', '!', '?', '.', '(', ')', '"':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Contains reports whether needle is present in the given feature slice
// (exact, case-insensitive).
func Contains(features []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, f := range features {
		if strings.ToLower(f) == needle {
			return true
		}
	}
	return false
}
