package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"urbanreport-be/export"
	"urbanreport-be/models"
	"urbanreport-be/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type statusNotifier interface {
	Dispatch(ctx context.Context, req models.NotificationRequest) <-chan models.NotificationResult
}

// IssueController serves the issue API on top of one Store.
type IssueController struct {
	store      *store.Store
	notifier   statusNotifier
	notifyWait time.Duration
	now        func() time.Time
}

func NewIssueController(s *store.Store, n statusNotifier, notifyWait time.Duration) *IssueController {
	return &IssueController{store: s, notifier: n, notifyWait: notifyWait, now: time.Now}
}

// GetAllIssues handles retrieving issues with search, filters and sorting
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	issues := ic.store.List(filterFromQuery(c))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": len(issues),
		"total":       ic.store.Len(),
	})
}

// GetIssueStats returns the admin dashboard counters
func (ic *IssueController) GetIssueStats(c *gin.Context) {
	c.JSON(http.StatusOK, ic.store.Stats())
}

// ExportIssues returns the filtered issue list as an Excel workbook
func (ic *IssueController) ExportIssues(c *gin.Context) {
	issues := ic.store.List(filterFromQuery(c))

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, issues); err != nil {
		log.Error().Err(err).Msg("failed to export issues")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export issues"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(ic.now())+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input models.CreateIssueInput
	if !bindStrict(c, &input) {
		return
	}

	issue, err := ic.store.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().Str("issue_id", issue.ID).Str("category", string(issue.Category)).Msg("issue reported")
	c.JSON(http.StatusCreated, issue)
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus changes the status of an issue and notifies its
// reporter. The status change stands whatever happens to the notification.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	var input models.StatusUpdateInput
	if !bindStrict(c, &input) {
		return
	}

	status, ok := models.ParseStatus(input.Status)
	if !ok {
		respondError(c, &store.ValidationError{Fields: []string{"status"}})
		return
	}

	transition, err := ic.store.UpdateStatus(c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().
		Str("issue_id", transition.Issue.ID).
		Str("from", string(transition.Previous)).
		Str("to", string(transition.Current)).
		Msg("issue status updated")

	pending := ic.notifier.Dispatch(c.Request.Context(), models.NotificationRequest{
		IssueID:        transition.Issue.ID,
		Recipient:      transition.Issue.ReportedBy,
		PreviousStatus: transition.Previous,
		NewStatus:      transition.Current,
	})

	c.JSON(http.StatusOK, gin.H{
		"issue":          transition.Issue,
		"previousStatus": transition.Previous,
		"notification":   ic.await(c, pending),
	})
}

// NotifyIssue re-sends the status notification of an issue on request
func (ic *IssueController) NotifyIssue(c *gin.Context) {
	var input models.NotifyInput
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	issue, err := ic.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	previous := issue.Status
	if input.PreviousStatus != "" {
		st, ok := models.ParseStatus(input.PreviousStatus)
		if !ok {
			respondError(c, &store.ValidationError{Fields: []string{"previousStatus"}})
			return
		}
		previous = st
	}

	pending := ic.notifier.Dispatch(c.Request.Context(), models.NotificationRequest{
		IssueID:        issue.ID,
		Recipient:      issue.ReportedBy,
		PreviousStatus: previous,
		NewStatus:      issue.Status,
	})

	c.JSON(http.StatusOK, gin.H{"notification": ic.await(c, pending)})
}

// DeleteIssue removes an issue
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	id := c.Param("id")
	if err := ic.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	log.Info().Str("issue_id", id).Msg("issue deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// LikeIssue adds a like to an issue
func (ic *IssueController) LikeIssue(c *gin.Context) {
	issue, err := ic.store.Like(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": issue.ID, "likesCount": issue.LikesCount})
}

// UnlikeIssue removes a like from an issue
func (ic *IssueController) UnlikeIssue(c *gin.Context) {
	issue, err := ic.store.Unlike(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": issue.ID, "likesCount": issue.LikesCount})
}

// GetComments lists the comments on an issue
func (ic *IssueController) GetComments(c *gin.Context) {
	comments, err := ic.store.Comments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment appends a comment to an issue
func (ic *IssueController) AddComment(c *gin.Context) {
	var input models.CreateCommentInput
	if !bindStrict(c, &input) {
		return
	}

	comment, err := ic.store.AddComment(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// await waits for the notification outcome up to notifyWait. An unsettled
// attempt keeps running and is reported as pending.
func (ic *IssueController) await(c *gin.Context, pending <-chan models.NotificationResult) models.NotificationResult {
	timer := time.NewTimer(ic.notifyWait)
	defer timer.Stop()

	select {
	case result, ok := <-pending:
		if !ok {
			return models.NotificationResult{Pending: true}
		}
		return result
	case <-timer.C:
		return models.NotificationResult{Pending: true}
	case <-c.Request.Context().Done():
		return models.NotificationResult{Pending: true}
	}
}

func filterFromQuery(c *gin.Context) store.Filter {
	return store.Filter{
		Search:   c.Query("search"),
		Status:   c.DefaultQuery("status", store.Wildcard),
		Category: c.DefaultQuery("category", store.Wildcard),
		Sort:     c.Query("sort"),
	}
}

// bindStrict decodes the JSON body into dst, rejecting unknown fields. It
// writes the 400 response itself and reports whether decoding succeeded.
func bindStrict(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	var validationErr *store.ValidationError
	var notFoundErr *store.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields", "fields": validationErr.Fields})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
