// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/common/database"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/common/observability"
	"chatbot-workers/internal/engine"
	"chatbot-workers/internal/faq"
	"chatbot-workers/internal/knowledge"
	"chatbot-workers/internal/nlp"
	"chatbot-workers/internal/session"

	// Chat Workers (4)
	cu "chatbot-workers/internal/workers/chat/classify-user"
	es "chatbot-workers/internal/workers/chat/escalate-support"
	mf "chatbot-workers/internal/workers/chat/match-faq"
	cr "chatbot-workers/internal/workers/chat/respond"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Load Knowledge Base & Build Engine ---
	kbRepo := knowledge.NewRepository(pg.DB)
	kb := knowledge.Snapshot(ctx, cfg.Chatbot, kbRepo, log)
	eng := engine.New(kb)
	zapLog.Info("Matching engine ready", zap.Int("knowledgeEntries", len(kb)))

	// --- Shared Service Clients ---
	extractor := nlp.NewHTTPExtractor(&nlp.HTTPExtractorConfig{
		BaseURL:    cfg.Extractor.BaseURL,
		Timeout:    time.Duration(cfg.Extractor.Timeout) * time.Millisecond,
		MaxRetries: cfg.Extractor.MaxRetries,
	})
	sessionStore := session.NewStore(redis.Client, cfg.Session)
	faqSearcher := faq.NewSearcher(esClient.Client, cfg.FAQ)

	// --- Register Chat Workers (4) ---
	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				Timeout:             time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
				EscalationThreshold: cfg.Chatbot.EscalationThreshold,
				MinFAQOverlap:       cfg.Chatbot.MinFAQOverlap,
			},
			eng, extractor, sessionStore, faqSearcher, log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, obs, zapLog)
	}

	if cfg.Workers[cu.TaskType].Enabled {
		handler := cu.NewHandler(
			&cu.Config{
				Timeout: time.Duration(cfg.Workers[cu.TaskType].Timeout) * time.Millisecond,
			},
			extractor, log,
		)
		startWorker(zeebeClient, cu.TaskType, cfg.Workers[cu.TaskType], handler.Handle, obs, zapLog)
	}

	if cfg.Workers[mf.TaskType].Enabled {
		handler := mf.NewHandler(
			&mf.Config{
				Timeout:    time.Duration(cfg.Workers[mf.TaskType].Timeout) * time.Millisecond,
				MinOverlap: cfg.Chatbot.MinFAQOverlap,
			},
			extractor, faqSearcher, log,
		)
		startWorker(zeebeClient, mf.TaskType, cfg.Workers[mf.TaskType], handler.Handle, obs, zapLog)
	}

	if cfg.Workers[es.TaskType].Enabled {
		handler, err := es.NewHandler(
			&es.Config{
				Timeout:      time.Duration(cfg.Workers[es.TaskType].Timeout) * time.Millisecond,
				AWSRegion:    cfg.Notifications.AWS.Region,
				EmailEnabled: cfg.Notifications.Email.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				SupportTo:    cfg.Notifications.Email.SupportTo,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				OnCallPhone:  cfg.Notifications.SMS.OnCall,
			},
			pg.DB, sessionStore, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create chat-escalate-support handler", zap.Error(err))
		}
		startWorker(zeebeClient, es.TaskType, cfg.Workers[es.TaskType], handler.Handle, obs, zapLog)
	}
	zapLog.Info("All chat workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), obs *observability.Observability, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	instrumented := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		handlerFunc(jobClient, job)
		obs.RecordJob(context.Background(), taskType, time.Since(start))
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(instrumented).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
