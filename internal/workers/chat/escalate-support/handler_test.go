// internal/workers/chat/escalate-support/handler_test.go
package escalatesupport

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-workers/internal/common/logger"
	"chatbot-workers/internal/models"
)

// ============================================================================
// TEST DOUBLES
// ============================================================================

type mockSES struct {
	calls []*ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	return &ses.SendEmailOutput{}, m.err
}

type mockSNS struct {
	calls []*sns.PublishInput
	err   error
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	return &sns.PublishOutput{}, m.err
}

type stubSessionStore struct {
	sess *models.ChatSession
	err  error
}

func (s *stubSessionStore) Get(_ context.Context, _ string) (*models.ChatSession, error) {
	return s.sess, s.err
}

func testSession() *models.ChatSession {
	sess := &models.ChatSession{
		ID:        "sess-1",
		User:      models.UserInfo{UserID: "u-1", UserType: "client"},
		CreatedAt: time.Now().UTC(),
	}
	sess.Append(models.ConversationExchange{
		Query:     "xyzzy",
		Response:  "Je ne suis pas sûr de comprendre votre demande.",
		Category:  "general",
		Source:    "default",
		Timestamp: time.Now().UTC(),
	})
	return sess
}

func newTestHandler(t *testing.T, sesClient SESService, snsClient SNSService) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := LoadConfig()
	cfg.EmailEnabled = true
	cfg.FromEmail = "noreply@example.com"
	cfg.SupportTo = "support@example.com"
	cfg.SMSEnabled = true
	cfg.OnCallPhone = "+33600000000"

	return &Handler{
		config:    cfg,
		db:        db,
		sessions:  &stubSessionStore{sess: testSession()},
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    logger.NewTestLogger(t),
	}, mock
}

// ============================================================================
// EXECUTE
// ============================================================================

func TestExecute_FilesTicketAndNotifies(t *testing.T) {
	sesClient := &mockSES{}
	snsClient := &mockSNS{}
	handler, mock := newTestHandler(t, sesClient, snsClient)

	mock.ExpectQuery("SELECT id FROM support_tickets").
		WithArgs("sess-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO support_tickets").
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), &Input{
		SessionID: "sess-1",
		UserID:    "u-1",
		Reason:    ReasonRepeatedDefaults,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.TicketID)
	assert.Equal(t, StatusOpen, output.Status)
	assert.False(t, output.Duplicate)
	assert.True(t, output.EmailSent)
	assert.True(t, output.SMSSent)

	require.Len(t, sesClient.calls, 1)
	assert.Equal(t, []string{"support@example.com"}, sesClient.calls[0].Destination.ToAddresses)
	require.Len(t, snsClient.calls, 1)
	assert.Equal(t, "+33600000000", *snsClient.calls[0].PhoneNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateOpenTicket(t *testing.T) {
	sesClient := &mockSES{}
	snsClient := &mockSNS{}
	handler, mock := newTestHandler(t, sesClient, snsClient)

	mock.ExpectQuery("SELECT id FROM support_tickets").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ticket-42"))

	output, err := handler.Execute(context.Background(), &Input{
		SessionID: "sess-1",
		Reason:    ReasonUserRequest,
	})
	require.NoError(t, err)

	assert.True(t, output.Duplicate)
	assert.Equal(t, "ticket-42", output.TicketID)
	assert.Empty(t, sesClient.calls)
	assert.Empty(t, snsClient.calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_EmailFailureFailsJob(t *testing.T) {
	sesClient := &mockSES{err: errors.New("ses throttled")}
	handler, mock := newTestHandler(t, sesClient, &mockSNS{})

	mock.ExpectQuery("SELECT id FROM support_tickets").
		WithArgs("sess-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO support_tickets").
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := handler.Execute(context.Background(), &Input{
		SessionID: "sess-1",
		Reason:    ReasonDissatisfaction,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESCALATION_SEND_FAILED")
}

func TestExecute_SMSFailureIsBestEffort(t *testing.T) {
	snsClient := &mockSNS{err: errors.New("sns unavailable")}
	handler, mock := newTestHandler(t, &mockSES{}, snsClient)

	mock.ExpectQuery("SELECT id FROM support_tickets").
		WithArgs("sess-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO support_tickets").
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), &Input{
		SessionID: "sess-1",
		Reason:    ReasonRepeatedDefaults,
	})
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
}

func TestExecute_InsertFailure(t *testing.T) {
	handler, mock := newTestHandler(t, &mockSES{}, &mockSNS{})

	mock.ExpectQuery("SELECT id FROM support_tickets").
		WithArgs("sess-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO support_tickets").
		WillReturnError(errors.New("constraint violation"))

	_, err := handler.Execute(context.Background(), &Input{
		SessionID: "sess-1",
		Reason:    ReasonRepeatedDefaults,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_INSERT_FAILED")
}

func TestBuildTranscript(t *testing.T) {
	transcript := buildTranscript(testSession())

	assert.Contains(t, transcript, "Utilisateur: xyzzy")
	assert.Contains(t, transcript, "Assistant: Je ne suis pas sûr de comprendre votre demande.")
}
