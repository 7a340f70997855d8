// internal/engine/category_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatbot-workers/internal/nlp"
)

func TestAnalyzeCategories(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		feats     nlp.Features
		expected  []Category
	}{
		{
			name:      "single category from raw text",
			utterance: "comment payer ma facture",
			expected:  []Category{CategoryPayment},
		},
		{
			name:      "multiple categories in table order",
			utterance: "j'ai un problème de paiement",
			expected:  []Category{CategoryPayment, CategorySupport},
		},
		{
			name:      "category from extracted topic only",
			utterance: "ça ne va pas",
			feats:     nlp.Features{Topics: []string{"sécurité"}},
			expected:  []Category{CategorySecurity},
		},
		{
			name:      "category from extracted verb",
			utterance: "je voudrais savoir",
			feats:     nlp.Features{Verbs: []string{"inscrire"}},
			expected:  []Category{CategoryOnboarding},
		},
		{
			name:      "no category is a normal outcome",
			utterance: "Bonjour",
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnalyzeCategories(tt.utterance, tt.feats))
		})
	}
}

func TestAnalyzeCategories_Deterministic(t *testing.T) {
	utterance := "un litige sur la commande et la facture"
	first := AnalyzeCategories(utterance, nlp.Features{})
	second := AnalyzeCategories(utterance, nlp.Features{})
	assert.Equal(t, first, second)
	assert.Equal(t, []Category{CategoryPayment, CategorySecurity, CategoryProcess}, first)
}
