// internal/engine/faq.go
package engine

import (
	"strings"

	"chatbot-workers/internal/nlp"
)

// OverlapScore counts the exact (case-insensitive) feature intersections between
// an utterance and one candidate FAQ question, over topics and nouns. Higher is
// better; the value is an unbounded count, and callers comparing several FAQ
// candidates keep the maximum.
func OverlapScore(utterance, faq nlp.Features) int {
	return intersectionCount(utterance.Topics, faq.Topics) +
		intersectionCount(utterance.Nouns, faq.Nouns)
}

func intersectionCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[strings.ToLower(s)] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			count++
		}
	}
	return count
}
