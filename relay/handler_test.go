package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"urbanreport-be/config"
	"urbanreport-be/mocks"
	"urbanreport-be/models"
)

var mailCfg = config.MailConfig{
	From: "ops@urbanreport.example",
	To:   "ops@urbanreport.example",
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupHandler(t *testing.T, cfg config.MailConfig) (*Handler, *mocks.MockMailer) {
	ctrl := gomock.NewController(t)
	mockMailer := mocks.NewMockMailer(ctrl)
	return NewHandler(mockMailer, cfg), mockMailer
}

func post(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send-email", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.SendEmail(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.RelayResponse {
	t.Helper()
	var resp models.RelayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_SendEmail_Success(t *testing.T) {
	handler, mockMailer := setupHandler(t, mailCfg)

	mockMailer.EXPECT().
		Send(gomock.Any(), models.Email{
			From:    "ops@urbanreport.example",
			To:      "ops@urbanreport.example",
			Subject: "Status Update for Issue #1",
			Body:    "Hello, issue reported by John Smith is now updated to: resolved",
		}).
		Return(nil)

	w := post(t, handler, `{"issueId":"1","reportedBy":"John Smith","newStatus":"resolved"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MessageSent, decode(t, w).Message)
}

func TestHandler_SendEmail_MailerFailure(t *testing.T) {
	handler, mockMailer := setupHandler(t, mailCfg)

	mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: refused"))

	w := post(t, handler, `{"issueId":"1","reportedBy":"John Smith","newStatus":"resolved"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, MessageFailed, resp.Message)
	assert.Contains(t, resp.Error, "refused")
}

func TestHandler_SendEmail_MissingFields(t *testing.T) {
	handler, _ := setupHandler(t, mailCfg)

	w := post(t, handler, `{"issueId":"1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "reportedBy")
}

func TestHandler_SendEmail_UnknownField(t *testing.T) {
	handler, _ := setupHandler(t, mailCfg)

	w := post(t, handler, `{"issueId":"1","reportedBy":"x","newStatus":"resolved","cc":"a@b.c"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SendEmail_NoMailbox(t *testing.T) {
	handler, _ := setupHandler(t, config.MailConfig{})

	w := post(t, handler, `{"issueId":"1","reportedBy":"x","newStatus":"resolved"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, MessageFailed, decode(t, w).Message)
}

func TestCompose_RecipientRouting(t *testing.T) {
	req := models.RelayRequest{IssueID: "7", ReportedBy: "Ana", NewStatus: "in_progress", Recipient: "Ana <ana@example.com>"}

	email := Compose(req, mailCfg)
	assert.Equal(t, "ops@urbanreport.example", email.To, "routing disabled keeps the operator mailbox")

	routed := mailCfg
	routed.AllowRecipient = true
	email = Compose(req, routed)
	assert.Equal(t, "ana@example.com", email.To)

	req.Recipient = "Ana"
	email = Compose(req, routed)
	assert.Equal(t, "ops@urbanreport.example", email.To, "display names fall back to the operator mailbox")
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{})
	err := m.Send(context.Background(), models.Email{To: "a@b.c"})
	assert.ErrorIs(t, err, ErrMailerNotConfigured)
}
