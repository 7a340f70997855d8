// internal/models/chat.go
package models

import "time"

// UserInfo is what the chat flow knows about the speaker.
type UserInfo struct {
	UserID   string `json:"userId,omitempty"`
	UserType string `json:"userType"`
	Locale   string `json:"locale,omitempty"`
}

// ConversationExchange is one completed turn of a chat session. The host
// appends exchanges after each reply; the matching core only ever reads them.
type ConversationExchange struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is the per-conversation state persisted between turns.
type ChatSession struct {
	ID               string                 `json:"id"`
	User             UserInfo               `json:"user"`
	ConversationFlow []ConversationExchange `json:"conversationFlow"`
	MainTopics       []string               `json:"mainTopics,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastActivity     time.Time              `json:"lastActivity"`
}

// Append records a completed exchange and refreshes the activity timestamp.
func (s *ChatSession) Append(exchange ConversationExchange) {
	s.ConversationFlow = append(s.ConversationFlow, exchange)
	s.LastActivity = exchange.Timestamp
}

// RecordTopics merges the turn's category attributions into the session's main
// topics, keeping first-seen order and dropping duplicates.
func (s *ChatSession) RecordTopics(categories []string) {
	for _, c := range categories {
		if !containsString(s.MainTopics, c) {
			s.MainTopics = append(s.MainTopics, c)
		}
	}
}

// LastExchanges returns up to n most recent exchanges, oldest first.
func (s *ChatSession) LastExchanges(n int) []ConversationExchange {
	if n <= 0 || len(s.ConversationFlow) == 0 {
		return nil
	}
	if len(s.ConversationFlow) <= n {
		return s.ConversationFlow
	}
	return s.ConversationFlow[len(s.ConversationFlow)-n:]
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
