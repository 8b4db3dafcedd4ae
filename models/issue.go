package models

import (
	"strings"
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Traffic    IssueCategory = "traffic"
	Sanitation IssueCategory = "sanitation"
	Lighting   IssueCategory = "lighting"
	Waste      IssueCategory = "waste"
	Others     IssueCategory = "others"
)

// ParseCategory normalizes a category label. The report form historically
// sent "other", which maps onto Others.
func ParseCategory(s string) (IssueCategory, bool) {
	switch c := IssueCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case Traffic, Sanitation, Lighting, Waste, Others:
		return c, true
	case "other":
		return Others, true
	}
	return "", false
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "pending"
	InProgress IssueStatus = "in_progress"
	Resolved   IssueStatus = "resolved"
)

// Valid reports whether s is one of the known statuses.
func (s IssueStatus) Valid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// ParseStatus normalizes a status label.
func ParseStatus(s string) (IssueStatus, bool) {
	st := IssueStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// IssuePriority enum. Informational only, shown in the admin view.
type IssuePriority string

const (
	Low    IssuePriority = "low"
	Medium IssuePriority = "medium"
	High   IssuePriority = "high"
)

// Coordinates is a (longitude, latitude) pair.
type Coordinates [2]float64

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Category      IssueCategory `json:"category"`
	Status        IssueStatus   `json:"status"`
	Location      string        `json:"location"`
	Coordinates   Coordinates   `json:"coordinates"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	ReportedBy    string        `json:"reportedBy"`
	ReportedAt    time.Time     `json:"reportedAt"`
	CommentsCount int           `json:"commentsCount"`
	LikesCount    int           `json:"likesCount"`
	Priority      IssuePriority `json:"priority"`
}

// CreateIssueInput is the payload accepted when a citizen files a report.
type CreateIssueInput struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"required,max=1000"`
	Category    string       `json:"category" validate:"required,oneof=traffic sanitation lighting waste others"`
	Location    string       `json:"location" validate:"required,max=200"`
	ReportedBy  string       `json:"reportedBy" validate:"max=100"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Priority    string       `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// StatusUpdateInput is the payload of an admin status change.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved"`
}

// StatusTransition is returned by a status update so the notifier can be
// told what changed.
type StatusTransition struct {
	Issue    Issue       `json:"issue"`
	Previous IssueStatus `json:"previousStatus"`
	Current  IssueStatus `json:"newStatus"`
}

// Stats holds the admin dashboard counters.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}
