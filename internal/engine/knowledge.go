// internal/engine/knowledge.go
package engine

import (
	"strings"

	"chatbot-workers/internal/nlp"
)

// Scoring weights for the knowledge-base matcher.
const (
	kbKeywordPoints  = 10
	kbTopicBonus     = 5
	kbContextBonus   = 15
	kbScoreThreshold = 15
)

// FindBestAnswer scores every knowledge entry against the utterance and returns
// the best one, or nil when no entry clears the confidence threshold. Entries
// declaring required keywords are rejected outright when any of them is missing,
// no matter how well the rest matches. Ties keep the first entry in catalog
// order, so the result is deterministic for a given knowledge base.
func FindBestAnswer(utterance string, feats nlp.Features, kb []KnowledgeEntry, context []string) *MatchResult {
	normalized := nlp.Normalize(utterance)

	var best *KnowledgeEntry
	bestScore := 0

	for i := range kb {
		entry := &kb[i]

		if !hasAllRequired(normalized, entry.RequiredKeywords) {
			continue
		}

		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, strings.ToLower(kw)) {
				score += kbKeywordPoints
			}
		}
		for _, topic := range feats.Topics {
			if nlp.Contains(entry.Keywords, topic) {
				score += kbTopicBonus
			}
		}
		for _, cat := range context {
			if Category(cat) == entry.Category {
				score += kbContextBonus
				break
			}
		}

		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if best == nil || bestScore <= kbScoreThreshold {
		return nil
	}

	return &MatchResult{
		Response:   best.Response,
		Confidence: float64(bestScore),
		Category:   best.Category,
	}
}

func hasAllRequired(normalized string, required []string) bool {
	for _, kw := range required {
		if !strings.Contains(normalized, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
