// internal/nlp/phonetic_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "accent folding makes words identical",
			a:        "sécurité",
			b:        "securite",
			expected: 1,
		},
		{
			name:     "empty first word",
			a:        "",
			b:        "anything",
			expected: 0,
		},
		{
			name:     "empty second word",
			a:        "anything",
			b:        "",
			expected: 0,
		},
		{
			name:     "identical words",
			a:        "commande",
			b:        "commande",
			expected: 1,
		},
		{
			name:     "ph digraph folds to f",
			a:        "philosophie",
			b:        "filosofie",
			expected: 1,
		},
		{
			name:     "partial overlap",
			a:        "paiement",
			b:        "payment",
			expected: 0.8,
		},
		{
			name:     "no overlap",
			a:        "xyz",
			b:        "bdf",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 0.0001)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"paiement", "payment"},
		{"sécurité", "securite"},
		{"freelance", "freelancer"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), 0.0001)
	}
}
