// internal/engine/category.go
package engine

import (
	"strings"

	"chatbot-workers/internal/nlp"
)

// AnalyzeCategories maps an utterance to the categories whose keyword sets
// intersect its extracted features or its raw text. The result follows the
// declaration order of the category table; an empty result is a normal outcome.
func AnalyzeCategories(utterance string, feats nlp.Features) []Category {
	normalized := nlp.Normalize(utterance)

	var out []Category
	for _, entry := range categoryTable {
		if categoryMatches(normalized, feats, entry.Keywords) {
			out = append(out, entry.Category)
		}
	}
	return out
}

func categoryMatches(normalized string, feats nlp.Features, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
		if nlp.Contains(feats.Topics, kw) || nlp.Contains(feats.Nouns, kw) || nlp.Contains(feats.Verbs, kw) {
			return true
		}
	}
	return false
}
