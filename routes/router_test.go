package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"urbanreport-be/config"
	"urbanreport-be/controllers"
	"urbanreport-be/mocks"
	"urbanreport-be/models"
	"urbanreport-be/notifier"
	"urbanreport-be/relay"
	"urbanreport-be/store"
)

const relaySecret = "e2e-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type statusResponse struct {
	Issue        models.Issue              `json:"issue"`
	Notification models.NotificationResult `json:"notification"`
}

// newStack starts a relay backed by mailer and an API server whose notifier
// talks to it with notifierSecret.
func newStack(t *testing.T, mailer relay.Mailer, notifierSecret string) (*httptest.Server, *store.Store) {
	t.Helper()

	relaySrv := httptest.NewServer(NewRouter(Dependencies{
		Relay:       relay.NewHandler(mailer, config.MailConfig{From: "ops@example.com", To: "ops@example.com"}),
		RelaySecret: relaySecret,
	}))
	t.Cleanup(relaySrv.Close)

	s := store.New(store.SampleIssues())
	n := notifier.New(config.RelayConfig{URL: relaySrv.URL + "/send-email", Secret: notifierSecret, Timeout: 5 * time.Second})

	apiSrv := httptest.NewServer(NewRouter(Dependencies{
		Issues:         controllers.NewIssueController(s, n, 5*time.Second),
		AllowedOrigins: []string{"*"},
	}))
	t.Cleanup(apiSrv.Close)

	return apiSrv, s
}

func patchStatus(t *testing.T, base, id, status string) statusResponse {
	t.Helper()
	body, _ := json.Marshal(models.StatusUpdateInput{Status: status})
	req, err := http.NewRequest(http.MethodPatch, base+"/api/issues/"+id+"/status", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestStatusUpdate_EmailDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)
	mailer.EXPECT().
		Send(gomock.Any(), models.Email{
			From:    "ops@example.com",
			To:      "ops@example.com",
			Subject: "Status Update for Issue #2",
			Body:    "Hello, issue reported by Sarah Johnson is now updated to: resolved",
		}).
		Return(nil).
		Times(1)

	api, s := newStack(t, mailer, relaySecret)

	out := patchStatus(t, api.URL, "2", "resolved")
	assert.True(t, out.Notification.OK)
	assert.Equal(t, models.Resolved, out.Issue.Status)

	issue, err := s.Get("2")
	require.NoError(t, err)
	assert.Equal(t, models.Resolved, issue.Status)
}

func TestStatusUpdate_MailerFailureIsRelayRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("535 authentication failed"))

	api, s := newStack(t, mailer, relaySecret)

	out := patchStatus(t, api.URL, "1", "in_progress")
	assert.False(t, out.Notification.OK)
	assert.Equal(t, models.ReasonRelayRejected, out.Notification.Reason)

	issue, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.InProgress, issue.Status)
}

func TestStatusUpdate_BadCredentialsAreMisconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)

	api, _ := newStack(t, mailer, "wrong-secret")

	out := patchStatus(t, api.URL, "1", "resolved")
	assert.False(t, out.Notification.OK)
	assert.Equal(t, models.ReasonMisconfigured, out.Notification.Reason)
	assert.Equal(t, models.Resolved, out.Issue.Status)
}

func TestPing(t *testing.T) {
	r := NewRouter(Dependencies{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	r := NewRouter(Dependencies{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/issues", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
