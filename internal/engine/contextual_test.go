// internal/engine/contextual_test.go
package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContextualResponse_EmptyFlow(t *testing.T) {
	assert.Nil(t, GenerateContextualResponse("et pour les tarifs ?", nil))
	assert.Nil(t, GenerateContextualResponse("merci beaucoup", []Exchange{}))
}

func TestGenerateContextualResponse_FollowUp(t *testing.T) {
	flow := []Exchange{
		{Query: "quels sont vos tarifs", Response: "…", Category: string(GroupPricingInquiry)},
	}

	tests := []struct {
		name       string
		utterance  string
		wantLeadIn string
		wantClause string
	}{
		{
			name:       "connector opener, neutral polarity",
			utterance:  "et pour les freelances ?",
			wantLeadIn: "Très bien.",
			wantClause: "tarifs ou la commission",
		},
		{
			name:       "positive acknowledgement",
			utterance:  "oui, parfait",
			wantLeadIn: "Parfait !",
			wantClause: "tarifs ou la commission",
		},
		{
			name:       "negative acknowledgement",
			utterance:  "non, pas vraiment",
			wantLeadIn: "Je comprends votre réserve.",
			wantClause: "tarifs ou la commission",
		},
		{
			name:       "word overlap with an earlier query",
			utterance:  "les tarifs incluent la TVA ?",
			wantLeadIn: "Très bien.",
			wantClause: "tarifs ou la commission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := GenerateContextualResponse(tt.utterance, flow)
			require.NotNil(t, reply)
			assert.True(t, strings.HasPrefix(reply.Response, tt.wantLeadIn))
			assert.Contains(t, reply.Response, tt.wantClause)
			assert.Equal(t, string(GroupPricingInquiry), reply.Category)
		})
	}
}

func TestGenerateContextualResponse_ContinuationPerCategory(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		wantClause string
	}{
		{"service inquiry", string(GroupServiceInquiry), "prestation en particulier"},
		{"process question", string(GroupProcessQuestion), "étape du processus"},
		{"pricing inquiry", string(GroupPricingInquiry), "tarifs ou la commission"},
		{"unknown category falls back", "general", "un autre point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := []Exchange{{Query: "première question", Category: tt.category}}
			reply := GenerateContextualResponse("et ensuite ?", flow)
			require.NotNil(t, reply)
			assert.Contains(t, reply.Response, tt.wantClause)
			assert.Equal(t, tt.category, reply.Category)
		})
	}
}

func TestGenerateContextualResponse_OverlapWindow(t *testing.T) {
	// Only the last three exchanges count for word overlap.
	flow := []Exchange{
		{Query: "question sur le remboursement"},
		{Query: "bonjour"},
		{Query: "salut"},
		{Query: "coucou"},
	}
	assert.Nil(t, GenerateContextualResponse("remboursement possible", flow))
}

func TestGenerateContextualResponse_ShortWordsIgnored(t *testing.T) {
	// Short function words shared with history must not make the turn a
	// follow-up.
	flow := []Exchange{{Query: "je veux un devis"}}
	assert.Nil(t, GenerateContextualResponse("un chat dort", flow))
}

func TestGenerateContextualResponse_Feedback(t *testing.T) {
	flow := []Exchange{{Query: "bonjour"}}

	t.Run("satisfaction", func(t *testing.T) {
		reply := GenerateContextualResponse("c'était vraiment super, génial", flow)
		require.NotNil(t, reply)
		assert.Equal(t, "feedback", reply.Category)
		assert.Contains(t, reply.Response, "Ravi")
	})

	t.Run("dissatisfaction", func(t *testing.T) {
		reply := GenerateContextualResponse("cette réponse est inutile", flow)
		require.NotNil(t, reply)
		assert.Equal(t, "feedback", reply.Category)
		assert.Contains(t, reply.Response, "préciser")
	})

	t.Run("neither", func(t *testing.T) {
		assert.Nil(t, GenerateContextualResponse("une toute autre question", flow))
	})
}
