// internal/engine/expand.go
package engine

import (
	"sort"
	"strings"

	"chatbot-workers/internal/nlp"
)

const (
	groupNounPoints      = 3
	groupVerbPoints      = 3
	groupTopicPoints     = 4
	groupAdjectivePoints = 2
	groupPhrasePoints    = 5

	groupScoreThreshold = 3

	unknownIntent       = "unknown"
	unknownConfidence   = 0.1
	questionConfBump    = 0.1
	compositeGapCeiling = 0.2
)

// scoredGroup keeps the raw score next to the derived confidence while ranking;
// the raw score still orders groups once confidence saturates at the cap.
type scoredGroup struct {
	group      IntentGroup
	score      int
	confidence float64
}

// ExpandIntentDetection aggregates the specific-intent detector with the
// coarse intent-group scorers into a single ranked view of the turn. The main
// intent is the specific intent when one fires, upgraded to the top group when
// that group scores with higher confidence.
func ExpandIntentDetection(utterance string, feats nlp.Features) ExpandedIntent {
	normalized := nlp.Normalize(utterance)

	expanded := ExpandedIntent{
		MainIntent: unknownIntent,
		Confidence: unknownConfidence,
	}
	if match := DetectSpecificIntent(utterance, feats); match != nil {
		expanded.MainIntent = string(match.Intent)
		expanded.Confidence = match.Confidence
	}

	scored := scoreGroups(normalized, feats)
	if len(scored) > 0 && scored[0].confidence > expanded.Confidence {
		expanded.MainIntent = string(scored[0].group)
		expanded.Confidence = scored[0].confidence
		scored = scored[1:]
	}
	for _, s := range scored {
		expanded.SecondaryIntents = append(expanded.SecondaryIntents, ScoredIntent{
			Intent:     string(s.group),
			Confidence: s.confidence,
		})
	}

	if strings.Contains(normalized, "?") {
		expanded.Confidence += questionConfBump
		if expanded.Confidence > intentRegexConfidence {
			expanded.Confidence = intentRegexConfidence
		}
	}

	if len(expanded.SecondaryIntents) > 0 {
		gap := expanded.Confidence - expanded.SecondaryIntents[0].Confidence
		if gap < compositeGapCeiling {
			expanded.IsCompositeIntent = true
		}
	}
	return expanded
}

// scoreGroups scores every group profile against the utterance and its
// extracted features, keeping those above the threshold, best first. The sort
// is stable so catalog order breaks ties.
func scoreGroups(normalized string, feats nlp.Features) []scoredGroup {
	var scored []scoredGroup
	for _, profile := range groupCatalog {
		score := 0
		for _, noun := range profile.Nouns {
			if nlp.Contains(feats.Nouns, noun) || strings.Contains(normalized, noun) {
				score += groupNounPoints
			}
		}
		for _, verb := range profile.Verbs {
			if nlp.Contains(feats.Verbs, verb) || strings.Contains(normalized, verb) {
				score += groupVerbPoints
			}
		}
		for _, topic := range profile.Topics {
			if nlp.Contains(feats.Topics, topic) {
				score += groupTopicPoints
			}
		}
		for _, adj := range profile.Adjectives {
			if nlp.Contains(feats.Adjectives, adj) || strings.Contains(normalized, adj) {
				score += groupAdjectivePoints
			}
		}
		for _, phrase := range profile.Phrases {
			if strings.Contains(normalized, phrase) {
				score += groupPhrasePoints
			}
		}
		if score > groupScoreThreshold {
			scored = append(scored, scoredGroup{
				group:      profile.Group,
				score:      score,
				confidence: normalizeScore(score),
			})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}
