package models

import "time"

// Comment is an append-only note attached to an issue.
type Comment struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issueId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
}

type CreateCommentInput struct {
	Author  string `json:"author" validate:"max=100"`
	Content string `json:"content" validate:"required,max=2000"`
}
