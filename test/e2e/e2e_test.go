// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/common/database"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/engine"
	"chatbot-workers/internal/faq"
	"chatbot-workers/internal/knowledge"
	"chatbot-workers/internal/nlp"
	"chatbot-workers/internal/session"

	classifyuser "chatbot-workers/internal/workers/chat/classify-user"
	escalatesupport "chatbot-workers/internal/workers/chat/escalate-support"
	matchfaq "chatbot-workers/internal/workers/chat/match-faq"
	chatrespond "chatbot-workers/internal/workers/chat/respond"
)

const faqIndexE2E = "chatbot-faq-e2e"

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	var err error

	// Initialize Zeebe client with real connection
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"
	cfg.FAQ.Index = faqIndexE2E
	cfg.FAQ.CandidateSize = 5

	assertAllServicesConnectivity(t, cfg)
	createDatabaseTables(t, cfg)
	seedFAQIndex(t, cfg)

	testChatWorkers(t, ctx, cfg)

	t.Log("✅ ALL TESTS PASSED — Full E2E conversation flow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	rdb.Close()
	t.Log("✅ Redis connected")

	// --- Elasticsearch ---
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Database.Elasticsearch.GetURL()},
	})
	require.NoError(t, err, "❌ Elasticsearch client creation failed")

	res, err := es.Info()
	require.NoError(t, err, "❌ Elasticsearch info request failed")
	assert.False(t, res.IsError(), "❌ Elasticsearch returned error")
	res.Body.Close()
	t.Log("✅ Elasticsearch connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

// ==========================
// Database + FAQ index setup
// ==========================

func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS support_tickets (
			id VARCHAR(255) PRIMARY KEY,
			session_id VARCHAR(255) NOT NULL,
			user_id VARCHAR(255),
			user_type VARCHAR(50),
			reason VARCHAR(100),
			transcript TEXT,
			status VARCHAR(50) NOT NULL DEFAULT 'open',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS knowledge_entries (
			id SERIAL PRIMARY KEY,
			keywords TEXT[] NOT NULL,
			required_keywords TEXT[],
			category VARCHAR(100) NOT NULL,
			response TEXT NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT true,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, q := range queries {
		_, err := db.Exec(q)
		require.NoError(t, err, "❌ Table creation failed")
	}

	t.Log("✅ Database tables ready")
}

func seedFAQIndex(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Seeding FAQ index...")

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Database.Elasticsearch.GetURL()},
	})
	require.NoError(t, err)

	docs := map[string]string{
		"faq-e2e-1": `{
			"id": "faq-e2e-1",
			"question": "Comment obtenir mon RIB pour la banque ?",
			"answer": "Votre RIB est disponible dans les paramètres de votre compte.",
			"category": "payment",
			"topics": ["rib", "banque"],
			"nouns": ["rib", "banque", "compte"]
		}`,
		"faq-e2e-2": `{
			"id": "faq-e2e-2",
			"question": "Comment modifier mon profil ?",
			"answer": "Rendez-vous dans la section profil de votre espace.",
			"category": "account",
			"topics": ["profil", "compte"],
			"nouns": ["profil", "compte", "espace"]
		}`,
	}
	for id, body := range docs {
		res, err := es.Index(faqIndexE2E, strings.NewReader(body),
			es.Index.WithDocumentID(id),
			es.Index.WithRefresh("true"),
		)
		require.NoError(t, err, "❌ FAQ document indexing failed")
		require.False(t, res.IsError(), "❌ FAQ document indexing returned error")
		res.Body.Close()
	}

	t.Log("✅ FAQ index seeded")
}

// ==========================
// Worker execution
// ==========================

func testChatWorkers(t *testing.T, ctx context.Context, cfg *config.Config) {
	log := logger.NewZapAdapter(zapLog)

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	eng := engine.New(knowledge.Default())
	extractor := &nlp.StaticExtractor{}
	sessions := session.NewStore(rdb.GetClient(), cfg.Session)
	faqs := faq.NewSearcher(esClient.Client, cfg.FAQ)

	sessionID := "e2e-" + uuid.New().String()
	defer func() {
		_ = sessions.Delete(context.Background(), sessionID)
		_, _ = dbClient.GetDB().Exec(`DELETE FROM support_tickets WHERE session_id = $1`, sessionID)
	}()

	// --- chat-classify-user ---
	t.Log("🧪 Testing chat-classify-user...")
	classifyHandler := classifyuser.NewHandler(classifyuser.LoadConfig(), extractor, log)
	classifyOut, err := classifyHandler.Execute(ctx, &classifyuser.Input{
		Message: "je suis freelance et je cherche des missions",
	})
	require.NoError(t, err)
	assert.Equal(t, "freelance", classifyOut.UserType)
	t.Log("✅ chat-classify-user passed")

	// --- chat-respond, two turns in one session ---
	t.Log("🧪 Testing chat-respond...")
	respondHandler := chatrespond.NewHandler(chatrespond.LoadConfig(), eng, extractor, sessions, faqs, log)

	firstOut, err := respondHandler.Execute(ctx, &chatrespond.Input{
		SessionID: sessionID,
		UserID:    "e2e-user",
		Message:   "comment fonctionne le paiement sur la plateforme ?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, firstOut.Response)
	assert.NotEqual(t, engine.SourceDefault, firstOut.Source)

	secondOut, err := respondHandler.Execute(ctx, &chatrespond.Input{
		SessionID: sessionID,
		Message:   "et pour la facturation ?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, secondOut.Response)

	sess, err := sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, sess.ConversationFlow, 2, "both turns should be in the session flow")
	t.Log("✅ chat-respond passed")

	// --- chat-match-faq ---
	t.Log("🧪 Testing chat-match-faq...")
	matchHandler := matchfaq.NewHandler(matchfaq.LoadConfig(), extractor, faqs, log)
	matchOut, err := matchHandler.Execute(ctx, &matchfaq.Input{
		Message: "rib banque",
	})
	require.NoError(t, err)
	assert.True(t, matchOut.Found)
	assert.Equal(t, "faq-e2e-1", matchOut.FAQID)
	t.Log("✅ chat-match-faq passed")

	// --- chat-escalate-support ---
	t.Log("🧪 Testing chat-escalate-support...")
	escalateCfg := escalatesupport.LoadConfig()
	escalateCfg.EmailEnabled = false
	escalateCfg.SMSEnabled = false

	escalateHandler, err := escalatesupport.NewHandler(escalateCfg, dbClient.GetDB(), sessions, log)
	require.NoError(t, err)

	escalateOut, err := escalateHandler.Execute(ctx, &escalatesupport.Input{
		SessionID: sessionID,
		UserID:    "e2e-user",
		Reason:    escalatesupport.ReasonUserRequest,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, escalateOut.TicketID)
	assert.Equal(t, escalatesupport.StatusOpen, escalateOut.Status)
	assert.False(t, escalateOut.Duplicate)

	// A second escalation for the same session must find the open ticket.
	retryOut, err := escalateHandler.Execute(ctx, &escalatesupport.Input{
		SessionID: sessionID,
		Reason:    escalatesupport.ReasonUserRequest,
	})
	require.NoError(t, err)
	assert.True(t, retryOut.Duplicate)
	assert.Equal(t, escalateOut.TicketID, retryOut.TicketID)
	t.Log("✅ chat-escalate-support passed")
}
