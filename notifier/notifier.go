// Package notifier tells reporters about status changes of their issues by
// asking the mail relay to send an email.
//
// A notification never affects the status change that triggered it: the
// store mutation has been committed before Dispatch is called, and failures
// are only reported back to the caller as a NotificationResult.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"urbanreport-be/config"
	"urbanreport-be/models"
	authUtils "urbanreport-be/utils"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 10 * time.Second
	tokenTTL        = time.Minute
	maxResponseBody = 64 << 10
)

var errRelayURLMissing = errors.New("relay url is not configured")

// Notifier posts status change notifications to the mail relay.
type Notifier struct {
	client   *http.Client
	relayURL string
	secret   string
}

type Option func(*Notifier)

// WithHTTPClient replaces the HTTP client used to reach the relay.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// New creates a Notifier for the relay described by cfg.
func New(cfg config.RelayConfig, opts ...Option) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	n := &Notifier{
		client:   &http.Client{Timeout: timeout},
		relayURL: cfg.URL,
		secret:   cfg.Secret,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Dispatch starts one notification attempt in the background and returns a
// channel that receives its result exactly once. The attempt is detached
// from ctx cancellation so an aborted HTTP request does not cut it short.
func (n *Notifier) Dispatch(ctx context.Context, req models.NotificationRequest) <-chan models.NotificationResult {
	out := make(chan models.NotificationResult, 1)
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(out)
		out <- n.Notify(ctx, req)
	}()

	return out
}

// Notify makes exactly one attempt to deliver req through the relay. There
// is no retry; callers that want one invoke Notify again.
func (n *Notifier) Notify(ctx context.Context, req models.NotificationRequest) models.NotificationResult {
	logger := log.With().
		Str("issue_id", req.IssueID).
		Str("previous_status", string(req.PreviousStatus)).
		Str("new_status", string(req.NewStatus)).
		Logger()

	result := n.send(ctx, req)
	if result.OK {
		logger.Info().Msg("status notification sent")
	} else {
		logger.Warn().Str("reason", string(result.Reason)).Str("error", result.Error).Msg("status notification failed")
	}

	return result
}

func (n *Notifier) send(ctx context.Context, req models.NotificationRequest) models.NotificationResult {
	if n.relayURL == "" {
		return failure(models.ReasonMisconfigured, errRelayURLMissing)
	}

	token, err := authUtils.GenerateRelayToken(n.secret, tokenTTL)
	if err != nil {
		return failure(models.ReasonMisconfigured, err)
	}

	body, err := json.Marshal(models.RelayRequest{
		IssueID:        req.IssueID,
		ReportedBy:     req.Recipient,
		NewStatus:      string(req.NewStatus),
		PreviousStatus: string(req.PreviousStatus),
		Recipient:      req.Recipient,
	})
	if err != nil {
		return failure(models.ReasonMisconfigured, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.relayURL, bytes.NewReader(body))
	if err != nil {
		return failure(models.ReasonMisconfigured, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return failure(models.ReasonTransportError, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	var relayResp models.RelayResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&relayResp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return models.NotificationResult{OK: true}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return failure(models.ReasonMisconfigured, fmt.Errorf("relay refused credentials: %s", resp.Status))
	default:
		return failure(models.ReasonRelayRejected, relayError(resp.Status, relayResp))
	}
}

func relayError(status string, resp models.RelayResponse) error {
	switch {
	case resp.Error != "":
		return fmt.Errorf("relay responded %s: %s: %s", status, resp.Message, resp.Error)
	case resp.Message != "":
		return fmt.Errorf("relay responded %s: %s", status, resp.Message)
	default:
		return fmt.Errorf("relay responded %s", status)
	}
}

func failure(reason models.NotificationReason, err error) models.NotificationResult {
	return models.NotificationResult{OK: false, Reason: reason, Error: err.Error()}
}
