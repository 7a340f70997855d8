// internal/engine/contextual.go
package engine

import (
	"regexp"
	"strings"

	"chatbot-workers/internal/nlp"
)

// Words shorter than this never count as topical overlap with earlier turns;
// French articles and pronouns would otherwise make every utterance a
// follow-up.
const minOverlapWordLen = 4

const contextWindow = 3

var (
	connectorRe = regexp.MustCompile(`^(et |mais |donc |alors |aussi |oui\b|non\b|ok\b|d'accord\b|je comprends\b|merci\b)`)
	positiveRe  = regexp.MustCompile(`^(oui|ok|d'accord|bien|parfait|super|génial|excellent)\b`)
	negativeRe  = regexp.MustCompile(`^(non|pas|jamais|impossible|difficile)\b`)
)

var satisfactionWords = []string{
	"merci", "parfait", "super", "génial", "excellent", "top", "nickel",
}

var dissatisfactionWords = []string{
	"déçu", "decu", "nul", "mauvais", "insatisfait", "mécontent", "inutile",
}

var followUpLeadIns = map[string]string{
	"positive": "Parfait ! ",
	"negative": "Je comprends votre réserve. ",
	"neutral":  "Très bien. ",
}

// GenerateContextualResponse tries to answer the turn from the conversation
// alone, without consulting any matcher. It only produces a reply for
// follow-ups on the previous exchange and for pure feedback utterances;
// anything else returns nil so the caller falls through to the matchers.
func GenerateContextualResponse(utterance string, flow []Exchange) *ContextualReply {
	if len(flow) == 0 {
		return nil
	}

	normalized := nlp.Normalize(utterance)
	last := flow[len(flow)-1]

	if isFollowUp(normalized, flow) {
		return &ContextualReply{
			Response: followUpLeadIns[classifyPolarity(normalized)] + continuationFor(last.Category),
			Category: last.Category,
		}
	}

	if containsAny(normalized, satisfactionWords) {
		return &ContextualReply{
			Response: "Ravi d'avoir pu vous aider ! N'hésitez pas si vous avez d'autres questions.",
			Category: "feedback",
		}
	}
	if containsAny(normalized, dissatisfactionWords) {
		return &ContextualReply{
			Response: "Désolé que ma réponse ne vous convienne pas. Pouvez-vous préciser votre question ?",
			Category: "feedback",
		}
	}

	return nil
}

// isFollowUp detects continuation of the previous turns: either a connector or
// acknowledgement opener, or word-level overlap with one of the last few
// recorded queries.
func isFollowUp(normalized string, flow []Exchange) bool {
	if connectorRe.MatchString(normalized) {
		return true
	}

	start := len(flow) - contextWindow
	if start < 0 {
		start = 0
	}
	for _, word := range nlp.Words(normalized) {
		if len([]rune(word)) < minOverlapWordLen {
			continue
		}
		for _, ex := range flow[start:] {
			if nlp.Contains(nlp.Words(nlp.Normalize(ex.Query)), word) {
				return true
			}
		}
	}
	return false
}

func classifyPolarity(normalized string) string {
	switch {
	case positiveRe.MatchString(normalized):
		return "positive"
	case negativeRe.MatchString(normalized):
		return "negative"
	default:
		return "neutral"
	}
}

// continuationFor picks the clause that keeps the previous topic going.
func continuationFor(category string) string {
	switch IntentGroup(category) {
	case GroupServiceInquiry:
		return "Souhaitez-vous que je vous détaille une prestation en particulier ?"
	case GroupProcessQuestion:
		return "Voulez-vous que je vous précise une étape du processus ?"
	case GroupPricingInquiry:
		return "Voulez-vous plus de détails sur les tarifs ou la commission ?"
	default:
		return "Puis-je vous aider sur un autre point ?"
	}
}

func containsAny(normalized string, words []string) bool {
	for _, w := range words {
		if strings.Contains(normalized, w) {
			return true
		}
	}
	return false
}
