package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"urbanreport-be/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	SortNewest        = "newest"
	SortOldest        = "oldest"
	SortMostLiked     = "most-liked"
	SortMostCommented = "most-commented"

	// Wildcard matches every status or category.
	Wildcard = "all"

	defaultReporter      = "Guest User"
	defaultCommentAuthor = "Anonymous"
)

// DefaultCoordinates is used when a report is filed without a map pin.
var DefaultCoordinates = models.Coordinates{-74.007, 40.713}

// Filter selects issues for List. Empty fields match everything.
type Filter struct {
	Search   string
	Status   string
	Category string
	Sort     string
}

// Store holds the issues of the running process in insertion order.
//
// Every operation runs to completion under the store lock, so callers never
// observe a half-applied mutation. There is no optimistic concurrency: two
// writers racing on the same issue resolve last-write-wins.
type Store struct {
	mu       sync.RWMutex
	issues   []*models.Issue
	comments map[string][]models.Comment
	nextID   int
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Store)

// WithClock overrides the time source used for reportedAt and comment
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store preloaded with seed. Seed entries with a duplicate id
// are skipped.
func New(seed []models.Issue, opts ...Option) *Store {
	s := &Store{
		comments: make(map[string][]models.Comment),
		nextID:   1,
		now:      time.Now,
		validate: models.NewValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, issue := range seed {
		if s.indexOf(issue.ID) >= 0 {
			log.Warn().Str("issue_id", issue.ID).Msg("skipping duplicate seed issue")
			continue
		}
		issue := issue
		s.issues = append(s.issues, &issue)
		if n, err := strconv.Atoi(issue.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

// List returns copies of the issues matching f.
func (s *Store) List(f Filter) []models.Issue {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := normalizeStatusFilter(f.Status)
	category := normalizeCategoryFilter(f.Category)

	s.mu.RLock()
	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Location), search) {
			continue
		}
		if status != "" && string(issue.Status) != status {
			continue
		}
		if category != "" && string(issue.Category) != category {
			continue
		}
		out = append(out, *issue)
	}
	s.mu.RUnlock()

	sortIssues(out, f.Sort)
	return out
}

func normalizeStatusFilter(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == Wildcard {
		return ""
	}
	return v
}

func normalizeCategoryFilter(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == Wildcard {
		return ""
	}
	if c, ok := models.ParseCategory(v); ok {
		return string(c)
	}
	return v
}

func sortIssues(issues []models.Issue, key string) {
	var less func(a, b models.Issue) bool
	switch key {
	case SortNewest:
		less = func(a, b models.Issue) bool { return a.ReportedAt.After(b.ReportedAt) }
	case SortOldest:
		less = func(a, b models.Issue) bool { return a.ReportedAt.Before(b.ReportedAt) }
	case SortMostLiked:
		less = func(a, b models.Issue) bool { return a.LikesCount > b.LikesCount }
	case SortMostCommented:
		less = func(a, b models.Issue) bool { return a.CommentsCount > b.CommentsCount }
	default:
		return
	}
	sort.SliceStable(issues, func(i, j int) bool { return less(issues[i], issues[j]) })
}

// Get returns a copy of the issue with the given id.
func (s *Store) Get(id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Issue{}, &NotFoundError{ID: id}
	}
	return *s.issues[i], nil
}

// Create validates in and appends a new pending issue.
func (s *Store) Create(in models.CreateIssueInput) (models.Issue, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.ReportedBy = strings.TrimSpace(in.ReportedBy)
	if c, ok := models.ParseCategory(in.Category); ok {
		in.Category = string(c)
	}
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))

	if err := s.validate.Struct(in); err != nil {
		if fields := models.FieldErrors(err); len(fields) > 0 {
			return models.Issue{}, &ValidationError{Fields: fields}
		}
		return models.Issue{}, fmt.Errorf("validate issue: %w", err)
	}

	issue := models.Issue{
		Title:       in.Title,
		Description: in.Description,
		Category:    models.IssueCategory(in.Category),
		Status:      models.Pending,
		Location:    in.Location,
		Coordinates: DefaultCoordinates,
		ImageURL:    in.ImageURL,
		ReportedBy:  in.ReportedBy,
		Priority:    models.Medium,
	}
	if issue.ReportedBy == "" {
		issue.ReportedBy = defaultReporter
	}
	if in.Coordinates != nil {
		issue.Coordinates = *in.Coordinates
	}
	if in.Priority != "" {
		issue.Priority = models.IssuePriority(in.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issue.ID = strconv.Itoa(s.nextID)
	s.nextID++
	issue.ReportedAt = s.now()
	s.issues = append(s.issues, &issue)

	return issue, nil
}

// UpdateStatus sets the status of an issue and returns what changed. Any
// status may follow any other, including reopening a resolved issue.
func (s *Store) UpdateStatus(id string, status models.IssueStatus) (models.StatusTransition, error) {
	if !status.Valid() {
		return models.StatusTransition{}, &ValidationError{Fields: []string{"status"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.StatusTransition{}, &NotFoundError{ID: id}
	}

	issue := s.issues[i]
	previous := issue.Status
	issue.Status = status

	return models.StatusTransition{
		Issue:    *issue,
		Previous: previous,
		Current:  status,
	}, nil
}

// Delete removes an issue and its comments.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	s.issues = append(s.issues[:i], s.issues[i+1:]...)
	delete(s.comments, id)
	return nil
}

// Like increments the like counter of an issue.
func (s *Store) Like(id string) (models.Issue, error) {
	return s.adjustLikes(id, 1)
}

// Unlike decrements the like counter of an issue, never below zero.
func (s *Store) Unlike(id string) (models.Issue, error) {
	return s.adjustLikes(id, -1)
}

func (s *Store) adjustLikes(id string, delta int) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Issue{}, &NotFoundError{ID: id}
	}

	issue := s.issues[i]
	issue.LikesCount = max(issue.LikesCount+delta, 0)
	return *issue, nil
}

// AddComment appends a comment to an issue.
func (s *Store) AddComment(id string, in models.CreateCommentInput) (models.Comment, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Content = strings.TrimSpace(in.Content)

	if err := s.validate.Struct(in); err != nil {
		if fields := models.FieldErrors(err); len(fields) > 0 {
			return models.Comment{}, &ValidationError{Fields: fields}
		}
		return models.Comment{}, fmt.Errorf("validate comment: %w", err)
	}
	if in.Author == "" {
		in.Author = defaultCommentAuthor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Comment{}, &NotFoundError{ID: id}
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		IssueID:   id,
		Author:    in.Author,
		Content:   in.Content,
		Timestamp: s.now(),
	}
	s.comments[id] = append(s.comments[id], comment)
	s.issues[i].CommentsCount++

	return comment, nil
}

// Comments returns the comments of an issue, oldest first.
func (s *Store) Comments(id string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.indexOf(id) < 0 {
		return nil, &NotFoundError{ID: id}
	}

	out := make([]models.Comment, len(s.comments[id]))
	copy(out, s.comments[id])
	return out, nil
}

// Stats counts issues per status.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{Total: len(s.issues)}
	for _, issue := range s.issues {
		switch issue.Status {
		case models.Pending:
			stats.Pending++
		case models.InProgress:
			stats.InProgress++
		case models.Resolved:
			stats.Resolved++
		}
	}
	return stats
}

// Len returns the number of issues held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i, issue := range s.issues {
		if issue.ID == id {
			return i
		}
	}
	return -1
}
