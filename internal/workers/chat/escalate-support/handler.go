// internal/workers/chat/escalate-support/handler.go
package escalatesupport

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	commonaws "chatbot-workers/internal/common/aws"
	"chatbot-workers/internal/common/errors"
	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/common/metrics"
	"chatbot-workers/internal/models"
)

const (
	TaskType = "chat-escalate-support"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	sessions  SessionStore
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
	errs      *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, sessions SessionStore, log logger.Logger) (*Handler, error) {
	ctx := context.Background()
	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("init SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("init SNS client: %w", err)
	}

	return &Handler{
		config:    config,
		db:        db,
		sessions:  sessions,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errs:      errors.NewErrorHandler(log),
	}, nil
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
	if input.SessionID == "" {
		h.errs.HandleJobError(context.Background(), client, job, errors.NewInvalidChatInputError("sessionId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr, ok := err.(*errors.StandardError)
		if !ok {
			stdErr = errors.NewExternalServiceError("chat-escalate-support", err)
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

	// One open ticket per session. A retried job after a partial failure finds
	// the existing ticket instead of filing a second one.
	if existingID, err := h.findOpenTicket(ctx, input.SessionID); err != nil {
		return nil, err
	} else if existingID != "" {
		h.logger.Warn("open ticket already exists for session", map[string]interface{}{
			"sessionId": input.SessionID,
			"ticketId":  existingID,
		})
		return &Output{
			TicketID:  existingID,
			Status:    StatusOpen,
			Duplicate: true,
		}, nil
	}

	ticket := models.SupportTicket{
		ID:         uuid.New().String(),
		SessionID:  input.SessionID,
		UserID:     input.UserID,
		UserType:   sess.User.UserType,
		Reason:     input.Reason,
		Transcript: buildTranscript(sess),
		Status:     StatusOpen,
		CreatedAt:  time.Now().UTC(),
	}
	if ticket.UserID == "" {
		ticket.UserID = sess.User.UserID
	}

	if err := h.insertTicket(ctx, ticket); err != nil {
		return nil, err
	}

	output := &Output{
		TicketID:  ticket.ID,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt.Format(time.RFC3339),
	}

	if h.config.EmailEnabled && h.config.SupportTo != "" {
		if err := h.sendEmail(ctx, ticket); err != nil {
			return nil, errors.NewEscalationSendFailedError("email", err)
		}
		metrics.EscalationsSent.WithLabelValues("email").Inc()
		output.EmailSent = true
	}

	if h.config.SMSEnabled && h.config.OnCallPhone != "" {
		if err := h.sendSMS(ctx, ticket); err != nil {
			// Email already went out; the on-call ping is best effort.
			h.logger.Error("SMS send failed", map[string]interface{}{
				"ticketId": ticket.ID,
				"error":    err.Error(),
			})
		} else {
			metrics.EscalationsSent.WithLabelValues("sms").Inc()
			output.SMSSent = true
		}
	}

	h.logger.Info("escalation filed", map[string]interface{}{
		"ticketId":  ticket.ID,
		"sessionId": ticket.SessionID,
		"reason":    ticket.Reason,
		"emailSent": output.EmailSent,
		"smsSent":   output.SMSSent,
	})

	return output, nil
}

func (h *Handler) findOpenTicket(ctx context.Context, sessionID string) (string, error) {
	const query = `SELECT id FROM support_tickets WHERE session_id = $1 AND status = 'open'`

	var id string
	err := h.db.QueryRowContext(ctx, query, sessionID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewQueryExecutionFailedError(query, err)
	}
	return id, nil
}

func (h *Handler) insertTicket(ctx context.Context, ticket models.SupportTicket) error {
	const query = `
		INSERT INTO support_tickets (id, session_id, user_id, user_type, reason, transcript, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := h.db.ExecContext(ctx, query,
		ticket.ID, ticket.SessionID, ticket.UserID, ticket.UserType,
		ticket.Reason, ticket.Transcript, ticket.Status, ticket.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (h *Handler) sendEmail(ctx context.Context, ticket models.SupportTicket) error {
	subject := fmt.Sprintf("[Escalade chatbot] Ticket %s", ticket.ID)
	body := fmt.Sprintf(
		"Une conversation nécessite une prise en charge humaine.\n\nTicket: %s\nSession: %s\nUtilisateur: %s (%s)\nMotif: %s\n\nTranscription:\n%s",
		ticket.ID, ticket.SessionID, ticket.UserID, ticket.UserType, ticket.Reason, ticket.Transcript,
	)

	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{h.config.SupportTo},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, ticket models.SupportTicket) error {
	message := fmt.Sprintf("Escalade chatbot: ticket %s (session %s, motif %s)",
		ticket.ID, ticket.SessionID, ticket.Reason)

	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(h.config.OnCallPhone),
		Message:     aws.String(message),
	})
	return err
}

func buildTranscript(sess *models.ChatSession) string {
	var builder strings.Builder
	for _, ex := range sess.ConversationFlow {
		builder.WriteString("Utilisateur: ")
		builder.WriteString(ex.Query)
		builder.WriteString("\nAssistant: ")
		builder.WriteString(ex.Response)
		builder.WriteString("\n")
	}
	return builder.String()
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
