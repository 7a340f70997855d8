// internal/workers/chat/classify-user/handler.go
package classifyuser

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
	"chatbot-workers/internal/engine"
	"chatbot-workers/internal/nlp"
)

const (
	TaskType = "chat-classify-user"
)

type Handler struct {
	config    *Config
	extractor nlp.Extractor
	logger    logger.Logger
	errs      *errors.ErrorHandler
}

func NewHandler(config *Config, extractor nlp.Extractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		extractor: extractor,
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
			stdErr = errors.NewExternalServiceError("chat-classify-user", err)
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

	userType := engine.DetermineUserType(input.Message)
	categories := engine.AnalyzeCategories(input.Message, feats)
	expanded := engine.ExpandIntentDetection(input.Message, feats)

	output := &Output{
		UserType:        string(userType),
		Categories:      make([]string, 0, len(categories)),
		MainIntent:      expanded.MainIntent,
		Confidence:      expanded.Confidence,
		CompositeIntent: expanded.IsCompositeIntent,
	}
	for _, c := range categories {
		output.Categories = append(output.Categories, string(c))
	}
	for _, si := range expanded.SecondaryIntents {
		output.SecondaryIntents = append(output.SecondaryIntents, ScoredIntent{
			Intent:     si.Intent,
			Confidence: si.Confidence,
		})
	}

	h.logger.Info("user classified", map[string]interface{}{
		"userType":   output.UserType,
		"categories": output.Categories,
		"mainIntent": output.MainIntent,
		"confidence": output.Confidence,
	})

	return output, nil
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
