// Package relay implements the mail relay endpoint the notifier talks to.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	netmail "net/mail"
	"net/http"

	"urbanreport-be/config"
	"urbanreport-be/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	MessageSent   = "Email sent successfully"
	MessageFailed = "Email sending failed"
)

var errNoRecipient = errors.New("no recipient mailbox configured")

type Handler struct {
	mailer   Mailer
	validate *validator.Validate
	cfg      config.MailConfig
}

func NewHandler(m Mailer, cfg config.MailConfig) *Handler {
	return &Handler{mailer: m, validate: models.NewValidator(), cfg: cfg}
}

// SendEmail composes the status update email for one issue and hands it to
// the mailer.
func (h *Handler) SendEmail(c *gin.Context) {
	var req models.RelayRequest

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("relay: failed to decode request body")
		c.JSON(http.StatusBadRequest, models.RelayResponse{Message: "Invalid request body", Error: err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("relay: invalid request body")
		c.JSON(http.StatusBadRequest, models.RelayResponse{
			Message: "Invalid request body",
			Error:   fmt.Sprintf("missing fields: %v", models.FieldErrors(err)),
		})
		return
	}

	email := Compose(req, h.cfg)
	if email.To == "" {
		log.Error().Str("issue_id", req.IssueID).Msg("relay: no recipient mailbox configured")
		c.JSON(http.StatusInternalServerError, models.RelayResponse{Message: MessageFailed, Error: errNoRecipient.Error()})
		return
	}

	if err := h.mailer.Send(c.Request.Context(), email); err != nil {
		log.Error().Err(err).Str("issue_id", req.IssueID).Msg("relay: email sending failed")
		c.JSON(http.StatusInternalServerError, models.RelayResponse{Message: MessageFailed, Error: err.Error()})
		return
	}

	log.Info().Str("issue_id", req.IssueID).Str("to", email.To).Msg("relay: email sent")
	c.JSON(http.StatusOK, models.RelayResponse{Message: MessageSent})
}

// Compose builds the fixed status update email. The operator mailbox
// receives it unless recipient routing is enabled and the request names a
// valid address.
func Compose(req models.RelayRequest, cfg config.MailConfig) models.Email {
	to := cfg.To
	if cfg.AllowRecipient && req.Recipient != "" {
		if addr, err := netmail.ParseAddress(req.Recipient); err == nil {
			to = addr.Address
		}
	}

	return models.Email{
		From:    cfg.From,
		To:      to,
		Subject: fmt.Sprintf("Status Update for Issue #%s", req.IssueID),
		Body:    fmt.Sprintf("Hello, issue reported by %s is now updated to: %s", req.ReportedBy, req.NewStatus),
	}
}
