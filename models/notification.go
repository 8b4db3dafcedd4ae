package models

// NotificationReason classifies a failed notification attempt.
type NotificationReason string

const (
	ReasonTransportError NotificationReason = "transport-error"
	ReasonRelayRejected  NotificationReason = "relay-rejected"
	ReasonMisconfigured  NotificationReason = "misconfigured"
)

// NotificationRequest is built at the moment of a status transition and
// consumed once by the notifier.
type NotificationRequest struct {
	IssueID        string      `json:"issueId"`
	Recipient      string      `json:"recipient"`
	PreviousStatus IssueStatus `json:"previousStatus"`
	NewStatus      IssueStatus `json:"newStatus"`
}

// NotificationResult is the outcome of one notification attempt.
type NotificationResult struct {
	OK      bool               `json:"ok"`
	Reason  NotificationReason `json:"reason,omitempty"`
	Error   string             `json:"error,omitempty"`
	Pending bool               `json:"pending,omitempty"`
}

// RelayRequest is the body posted to the mail relay.
type RelayRequest struct {
	IssueID        string `json:"issueId" validate:"required"`
	ReportedBy     string `json:"reportedBy" validate:"required"`
	NewStatus      string `json:"newStatus" validate:"required"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
}

// RelayResponse is the body returned by the mail relay.
type RelayResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Email is a composed outbound message.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// NotifyInput is the optional body of an explicit notification retry.
type NotifyInput struct {
	PreviousStatus string `json:"previousStatus,omitempty" validate:"omitempty,oneof=pending in_progress resolved"`
}
