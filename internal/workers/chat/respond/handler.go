// internal/workers/chat/respond/handler.go
package chatrespond

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chatbot-workers/internal/common/errors"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/common/metrics"
	"chatbot-workers/internal/engine"
	"chatbot-workers/internal/faq"
	"chatbot-workers/internal/models"
	"chatbot-workers/internal/nlp"
)

const (
	TaskType = "chat-respond"

	// SourceFAQ marks replies served from the FAQ index rather than the
	// engine's own strategies.
	SourceFAQ = "faq"

	faqBaseConfidence    = 0.4
	faqOverlapConfidence = 0.1
	faqMaxConfidence     = 0.8

	// recentFlowWindow bounds how many past exchanges are handed to the
	// engine per turn.
	recentFlowWindow = 10
)

// Define interfaces for mocking
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Save(ctx context.Context, sess *models.ChatSession) error
}

type FAQSearcher interface {
	Search(ctx context.Context, utterance string) ([]faq.Entry, error)
}

type Handler struct {
	config    *Config
	engine    *engine.Engine
	extractor nlp.Extractor
	sessions  SessionStore
	faqs      FAQSearcher
	logger    logger.Logger
	errs      *errors.ErrorHandler
}

// NewHandler wires the full reply pipeline. faqs may be nil when no search
// backend is configured; the engine's default answer is used instead.
func NewHandler(config *Config, eng *engine.Engine, extractor nlp.Extractor, sessions SessionStore, faqs FAQSearcher, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		engine:    eng,
		extractor: extractor,
		sessions:  sessions,
		faqs:      faqs,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errs:      errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	raw := []byte(job.Variables)
	if err := validateInput(raw); err != nil {
		h.errs.HandleJobError(context.Background(), client, job, errors.NewInvalidChatInputError(err.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		h.errs.HandleJobError(context.Background(), client, job, errors.NewInvalidChatInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr, ok := err.(*errors.StandardError)
		if !ok {
			stdErr = errors.NewExternalServiceError("chat-respond", err)
		}
		h.errs.HandleJobError(context.Background(), client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	sess, err := h.sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, errors.NewSessionLoadFailedError(input.SessionID, err)
	}
	if input.UserID != "" && sess.User.UserID == "" {
		sess.User.UserID = input.UserID
	}

	feats := h.extractFeatures(ctx, input.Message)

	// The engine only reads the recent tail of the conversation; no point
	// copying a long session history turn after turn.
	recent := sess.LastExchanges(recentFlowWindow)
	flow := make([]engine.Exchange, 0, len(recent))
	for _, ex := range recent {
		flow = append(flow, engine.Exchange{
			Query:    ex.Query,
			Response: ex.Response,
			Category: ex.Category,
		})
	}

	reply := h.engine.Respond(engine.Query{
		Utterance:         input.Message,
		Features:          feats,
		ContextCategories: sess.MainTopics,
		Flow:              flow,
	})

	// The FAQ index only backs up the engine: it is consulted when every
	// matching strategy came up empty.
	if reply.Source == engine.SourceDefault && h.faqs != nil {
		h.tryFAQ(ctx, input.Message, feats, &reply)
	}

	if reply.Source == engine.SourceDefault {
		metrics.EngineNoMatch.Inc()
	}
	metrics.EngineMatches.WithLabelValues(reply.Source).Inc()

	sess.Append(models.ConversationExchange{
		Query:     input.Message,
		Response:  reply.Response,
		Category:  reply.Category,
		Source:    reply.Source,
		Timestamp: time.Now().UTC(),
	})

	topics := make([]string, 0, len(reply.Categories))
	for _, c := range reply.Categories {
		topics = append(topics, string(c))
	}
	sess.RecordTopics(topics)

	if sess.User.UserType == "" || sess.User.UserType == string(engine.UserTypeUndetermined) {
		sess.User.UserType = string(reply.UserType)
	}

	needsEscalation := h.needsEscalation(sess)

	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, errors.NewSessionSaveFailedError(input.SessionID, err)
	}

	output := &Output{
		SessionID:       input.SessionID,
		Response:        reply.Response,
		Category:        reply.Category,
		Confidence:      reply.Confidence,
		Source:          reply.Source,
		UserType:        sess.User.UserType,
		NeedsEscalation: needsEscalation,
	}
	if reply.Expanded != nil {
		output.MainIntent = reply.Expanded.MainIntent
		output.CompositeIntent = reply.Expanded.IsCompositeIntent
	}

	h.logger.Info("reply generated", map[string]interface{}{
		"sessionId":       input.SessionID,
		"source":          reply.Source,
		"category":        reply.Category,
		"confidence":      reply.Confidence,
		"needsEscalation": needsEscalation,
	})

	return output, nil
}

// extractFeatures asks the linguistic service for typed features. When the
// service is down the chat keeps working on a plain word split, so only the
// feature-dependent scorers degrade.
func (h *Handler) extractFeatures(ctx context.Context, message string) nlp.Features {
	feats, err := h.extractor.Extract(ctx, message)
	if err != nil {
		h.logger.Warn("feature extraction failed, degrading to word split", map[string]interface{}{
			"error": err.Error(),
		})
		static := &nlp.StaticExtractor{}
		feats, _ = static.Extract(ctx, message)
	}
	return feats
}

func (h *Handler) tryFAQ(ctx context.Context, message string, feats nlp.Features, reply *engine.Reply) {
	candidates, err := h.faqs.Search(ctx, message)
	if err != nil {
		h.logger.Warn("FAQ search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	match := faq.Rank(feats, candidates, h.config.MinFAQOverlap)
	if match == nil {
		return
	}

	reply.Response = match.Entry.Answer
	reply.Category = match.Entry.Category
	reply.Source = SourceFAQ
	reply.Confidence = faqConfidence(match.Overlap)
}

func faqConfidence(overlap int) float64 {
	conf := faqBaseConfidence + faqOverlapConfidence*float64(overlap)
	if conf > faqMaxConfidence {
		return faqMaxConfidence
	}
	return conf
}

// needsEscalation reports whether the tail of the conversation, including the
// exchange just appended, is an unbroken run of default answers at least
// EscalationThreshold long.
func (h *Handler) needsEscalation(sess *models.ChatSession) bool {
	if h.config.EscalationThreshold <= 0 {
		return false
	}
	run := 0
	for i := len(sess.ConversationFlow) - 1; i >= 0; i-- {
		if sess.ConversationFlow[i].Source != engine.SourceDefault {
			break
		}
		run++
	}
	return run >= h.config.EscalationThreshold
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}


func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
