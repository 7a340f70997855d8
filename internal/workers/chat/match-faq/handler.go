// internal/workers/chat/match-faq/handler.go
package matchfaq

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"chatbot-workers/internal/common/errors"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/faq"
	"chatbot-workers/internal/nlp"
)

const (
	TaskType = "chat-match-faq"
)

// Define interfaces for mocking
type FAQSearcher interface {
	Search(ctx context.Context, utterance string) ([]faq.Entry, error)
}

type Handler struct {
	config    *Config
	extractor nlp.Extractor
	faqs      FAQSearcher
	logger    logger.Logger
	errs      *errors.ErrorHandler
}

func NewHandler(config *Config, extractor nlp.Extractor, faqs FAQSearcher, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		extractor: extractor,
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errs.HandleJobError(context.Background(), client, job, errors.NewInvalidChatInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}
	if strings.TrimSpace(input.Message) == "" {
		h.errs.HandleJobError(context.Background(), client, job, errors.NewInvalidChatInputError("message is required"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr, ok := err.(*errors.StandardError)
		if !ok {
			stdErr = errors.NewExternalServiceError("chat-match-faq", err)
		}
		h.errs.HandleJobError(context.Background(), client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	feats, err := h.extractor.Extract(ctx, input.Message)
	if err != nil {
		if stderrors.Is(err, nlp.ErrExtractorTimeout) {
			return nil, errors.NewExtractorTimeoutError()
		}
		return nil, errors.NewExtractorFailedError(err)
	}

	candidates, err := h.faqs.Search(ctx, input.Message)
	if err != nil {
		return nil, err
	}

	match := faq.Rank(feats, candidates, h.config.MinOverlap)
	if match == nil {
		h.logger.Info("no FAQ match", map[string]interface{}{
			"candidates": len(candidates),
			"minOverlap": h.config.MinOverlap,
		})
		return &Output{Found: false}, nil
	}

	h.logger.Info("FAQ matched", map[string]interface{}{
		"faqId":   match.Entry.ID,
		"overlap": match.Overlap,
	})

	return &Output{
		Found:    true,
		FAQID:    match.Entry.ID,
		Question: match.Entry.Question,
		Answer:   match.Entry.Answer,
		Category: match.Entry.Category,
		Overlap:  match.Overlap,
	}, nil
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
