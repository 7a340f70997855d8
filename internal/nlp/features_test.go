// internal/nlp/features_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "quel est le prix ?", Normalize("  Quel est le PRIX ?  "))
	assert.Equal(t, "", Normalize("   "))
}

func TestWords(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		expected  []string
	}{
		{
			name:      "punctuation stripped",
			utterance: "Où en est ma commande ?",
			expected:  []string{"où", "en", "est", "ma", "commande"},
		},
		{
			name:      "commas and periods",
			utterance: "Bonjour, je cherche un freelance.",
			expected:  []string{"bonjour", "je", "cherche", "un", "freelance"},
		},
		{
			name:      "empty utterance",
			utterance: "",
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.utterance))
		})
	}
}

func TestContains(t *testing.T) {
	features := []string{"Paiement", "commande"}
	assert.True(t, Contains(features, "paiement"))
	assert.True(t, Contains(features, "COMMANDE"))
	assert.False(t, Contains(features, "commandes"))
	assert.False(t, Contains(nil, "paiement"))
}
