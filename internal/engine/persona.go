// internal/engine/persona.go
package engine

import (
	"strings"

	"chatbot-workers/internal/nlp"
)

// DetermineUserType decides whether the speaker is acting as a client or a
// freelance. Direct declarations ("je suis client", a lone "freelance", …) win
// immediately; otherwise a bag-of-keywords vote over two fixed lists decides,
// with "undetermined" on any tie.
func DetermineUserType(utterance string) UserType {
	normalized := nlp.Normalize(utterance)

	for _, rule := range personaRules {
		if rule.re.MatchString(normalized) {
			return rule.UserType
		}
	}

	clientScore := 0
	for _, kw := range clientKeywords {
		if strings.Contains(normalized, kw) {
			clientScore++
		}
	}
	freelanceScore := 0
	for _, kw := range freelanceKeywords {
		if strings.Contains(normalized, kw) {
			freelanceScore++
		}
	}

	switch {
	case clientScore > freelanceScore:
		return UserTypeClient
	case freelanceScore > clientScore:
		return UserTypeFreelance
	default:
		return UserTypeUndetermined
	}
}
