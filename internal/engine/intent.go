// internal/engine/intent.go
package engine

import (
	"strings"

	"chatbot-workers/internal/nlp"
)

const (
	intentRegexConfidence = 0.9
	intentScoreThreshold  = 7
	intentScoreDivisor    = 20.0

	intentKeywordPoints  = 5
	intentExactTermBonus = 4
	intentPartialBonus   = 2
	intentPhoneticBonus  = 3
	intentVerbBonus      = 3
	intentQuestionBonus  = 5

	phoneticMatchFloor = 0.7
)

// DetectSpecificIntent looks for a fine-grained intent in the utterance.
// Unambiguous regex phrasings win first with full confidence; only when no
// regex fires does the weighted keyword/phonetic fallback run. Returns nil when
// nothing clears the threshold.
func DetectSpecificIntent(utterance string, feats nlp.Features) *IntentMatch {
	normalized := nlp.Normalize(utterance)

	// Stage 1: regex catalog, first match anywhere wins.
	for _, ci := range intentCatalog {
		for _, re := range ci.regexes {
			if re.MatchString(normalized) {
				return &IntentMatch{Intent: ci.Intent, Confidence: intentRegexConfidence}
			}
		}
	}

	// Stage 2: weighted fallback.
	var best *IntentMatch
	bestScore := 0

	for _, ci := range intentCatalog {
		if len(ci.RequiredWords) > 0 && !hasAnyWord(normalized, ci.RequiredWords) {
			continue
		}

		score := 0
		for _, kw := range ci.Keywords {
			score += scoreKeyword(normalized, feats.Terms, strings.ToLower(kw))
		}
		for _, verb := range feats.Verbs {
			if nlp.Contains(genericIntentVerbs, verb) {
				score += intentVerbBonus
			}
		}
		if isQuestion(normalized) {
			score += intentQuestionBonus
		}

		if score > bestScore {
			bestScore = score
			best = &IntentMatch{Intent: ci.Intent}
		}
	}

	if best == nil || bestScore < intentScoreThreshold {
		return nil
	}
	best.Confidence = normalizeScore(bestScore)
	return best
}

// scoreKeyword awards the keyword's contribution: a direct substring hit is
// worth the full keyword points; otherwise each extracted term can contribute an
// exact, partial, or phonetic match, whichever applies first.
func scoreKeyword(normalized string, terms []string, kw string) int {
	if strings.Contains(normalized, kw) {
		return intentKeywordPoints
	}

	score := 0
	for _, term := range terms {
		term = strings.ToLower(term)
		switch {
		case term == kw:
			score += intentExactTermBonus
		case strings.Contains(term, kw) || strings.Contains(kw, term):
			score += intentPartialBonus
		case nlp.Similarity(term, kw) > phoneticMatchFloor:
			score += intentPhoneticBonus
		}
	}
	return score
}

func hasAnyWord(normalized string, words []string) bool {
	for _, w := range words {
		if strings.Contains(normalized, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// isQuestion reports whether the utterance is structurally a question.
func isQuestion(normalized string) bool {
	if strings.Contains(normalized, "?") {
		return true
	}
	for _, word := range interrogatives {
		if strings.HasPrefix(normalized, word+" ") || normalized == word {
			return true
		}
	}
	return false
}

func normalizeScore(score int) float64 {
	conf := float64(score) / intentScoreDivisor
	if conf > intentRegexConfidence {
		return intentRegexConfidence
	}
	return conf
}
