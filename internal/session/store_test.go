// internal/session/store_test.go
package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/models"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, config.SessionConfig{
		TTLHours:  24,
		KeyPrefix: "chat:session:",
	})
	return store, mr
}

// ============================================================================
// GET / SAVE
// ============================================================================

func TestStore_GetMissingReturnsFreshSession(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Get(context.Background(), "sess-123")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Equal(t, "sess-123", sess.ID)
	assert.Empty(t, sess.ConversationFlow)
	assert.False(t, sess.CreatedAt.IsZero())
}

func TestStore_SaveThenGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "sess-456")
	require.NoError(t, err)

	sess.User = models.UserInfo{UserID: "u-1", UserType: "freelance", Locale: "fr"}
	sess.Append(models.ConversationExchange{
		Query:     "comment fonctionne le paiement ?",
		Response:  "Les paiements sont sécurisés.",
		Category:  "payment",
		Source:    "knowledge_base",
		Timestamp: time.Now().UTC(),
	})
	sess.RecordTopics([]string{"payment"})

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "sess-456")
	require.NoError(t, err)
	assert.Equal(t, "freelance", loaded.User.UserType)
	require.Len(t, loaded.ConversationFlow, 1)
	assert.Equal(t, "payment", loaded.ConversationFlow[0].Category)
	assert.Equal(t, []string{"payment"}, loaded.MainTopics)
}

func TestStore_SaveSetsExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "sess-ttl")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	ttl := mr.TTL("chat:session:sess-ttl")
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestStore_GetCorruptPayload(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("chat:session:sess-bad", "not-json")

	_, err := store.Get(context.Background(), "sess-bad")
	assert.Error(t, err)
}

// Connection-level failures are injected with redismock since miniredis only
// models a healthy server.

func TestStore_GetRedisFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, config.SessionConfig{TTLHours: 24, KeyPrefix: "chat:session:"})

	mock.ExpectGet("chat:session:sess-down").SetErr(errConnRefused)

	_, err := store.Get(context.Background(), "sess-down")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load session sess-down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveRedisFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, config.SessionConfig{TTLHours: 24, KeyPrefix: "chat:session:"})

	mock.Regexp().ExpectSet("chat:session:sess-down", `.*`, 24*time.Hour).SetErr(errConnRefused)

	sess := &models.ChatSession{ID: "sess-down"}
	err := store.Save(context.Background(), sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session sess-down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "sess-del")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))
	require.True(t, mr.Exists("chat:session:sess-del"))

	require.NoError(t, store.Delete(ctx, "sess-del"))
	assert.False(t, mr.Exists("chat:session:sess-del"))
}
