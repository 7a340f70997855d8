// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/models"
)

// Store persists chat sessions in Redis, one JSON document per conversation.
// Sessions expire TTL after their last write, so an abandoned conversation
// cleans itself up.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore(client *redis.Client, cfg config.SessionConfig) *Store {
	return &Store{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    time.Duration(cfg.TTLHours) * time.Hour,
	}
}

// Get loads a session by ID. A missing key is not an error: a fresh session is
// returned so the first turn of a conversation needs no special casing.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &models.ChatSession{
			ID:           sessionID,
			CreatedAt:    now,
			LastActivity: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var sess models.ChatSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &sess, nil
}

// Save writes the session back and refreshes its expiry.
func (s *Store) Save(ctx context.Context, sess *models.ChatSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes a session, for example after an escalation hands the
// conversation to a human.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}
