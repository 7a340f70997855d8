// internal/models/chat_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func exchanges(queries ...string) []ConversationExchange {
	out := make([]ConversationExchange, 0, len(queries))
	for _, q := range queries {
		out = append(out, ConversationExchange{Query: q, Timestamp: time.Now().UTC()})
	}
	return out
}

func TestChatSession_LastExchanges(t *testing.T) {
	tests := []struct {
		name     string
		flow     []ConversationExchange
		n        int
		expected []string
	}{
		{
			name:     "shorter flow returned whole",
			flow:     exchanges("a", "b"),
			n:        3,
			expected: []string{"a", "b"},
		},
		{
			name:     "longer flow keeps the tail oldest first",
			flow:     exchanges("a", "b", "c", "d"),
			n:        2,
			expected: []string{"c", "d"},
		},
		{
			name: "zero window",
			flow: exchanges("a"),
			n:    0,
		},
		{
			name: "empty flow",
			n:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &ChatSession{ConversationFlow: tt.flow}

			got := sess.LastExchanges(tt.n)
			queries := make([]string, 0, len(got))
			for _, ex := range got {
				queries = append(queries, ex.Query)
			}

			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, queries)
		})
	}
}

func TestChatSession_RecordTopicsDeduplicates(t *testing.T) {
	sess := &ChatSession{}

	sess.RecordTopics([]string{"payment", "process"})
	sess.RecordTopics([]string{"process", "support"})

	assert.Equal(t, []string{"payment", "process", "support"}, sess.MainTopics)
}
