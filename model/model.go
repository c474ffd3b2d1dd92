package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status is the processing state of a scraped record.
type Status string

const (
	StatusCollected  Status = "collected"
	StatusIgnored    Status = "ignored"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
)

// ErrInvalidTransition is returned when a lifecycle helper is called from a
// status that does not allow it.
var ErrInvalidTransition = errors.New("invalid status transition")

//nolint:gochecknoglobals // validator caches struct metadata.
var validate = validator.New()

// CommentData is a single comment attached to a post.
type CommentData struct {
	CommentID string  `json:"comment_id" validate:"required"`
	PostID    string  `json:"post_id"    validate:"required"`
	Score     int     `json:"score"`
	Body      *string `json:"body,omitempty"`
}

// ScrapedData is the source-independent part of a scraped post.
type ScrapedData struct {
	PostID              string        `json:"post_id"                         validate:"required"`
	ID                  *int64        `json:"id,omitempty"`
	Title               *string       `json:"title,omitempty"`
	Score               int           `json:"score"`
	Comments            []CommentData `json:"comments,omitempty"              validate:"omitempty,dive"`
	CollectedAt         *time.Time    `json:"collected_at,omitempty"`
	ProcessingStartedAt *time.Time    `json:"processing_started_at,omitempty"`
	ProcessedAt         *time.Time    `json:"processed_at,omitempty"`
	Status              Status        `json:"status"                          validate:"omitempty,oneof=collected ignored processing processed failed"`
	ErrorMessage        *string       `json:"error_message,omitempty"`
}

// RedditData is a post scraped from Reddit.
type RedditData struct {
	ScrapedData

	Subreddit *string `json:"subreddit,omitempty"`
}

// NewScrapedData returns a record in the collected state.
func NewScrapedData(postID string, collectedAt time.Time) ScrapedData {
	return ScrapedData{
		PostID:      postID,
		CollectedAt: &collectedAt,
		Status:      StatusCollected,
	}
}

// NewRedditData returns a collected Reddit record.
func NewRedditData(postID, subreddit string, collectedAt time.Time) RedditData {
	return RedditData{
		ScrapedData: NewScrapedData(postID, collectedAt),
		Subreddit:   &subreddit,
	}
}

// Validate checks required fields and the status value. An empty status
// counts as collected. The record is not modified.
func (d *ScrapedData) Validate() error {
	err := validate.Struct(d)
	if err != nil {
		return describe(err)
	}

	return nil
}

// EffectiveStatus returns the status, reporting an unset one as collected.
func (d *ScrapedData) EffectiveStatus() Status {
	if d.Status == "" {
		return StatusCollected
	}

	return d.Status
}

// MarkProcessing moves a collected record into processing.
func (d *ScrapedData) MarkProcessing(at time.Time) error {
	if d.EffectiveStatus() != StatusCollected {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusProcessing)
	}

	d.Status = StatusProcessing
	d.ProcessingStartedAt = &at
	d.ErrorMessage = nil

	return nil
}

// MarkProcessed completes processing.
func (d *ScrapedData) MarkProcessed(at time.Time) error {
	if d.Status != StatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusProcessed)
	}

	d.Status = StatusProcessed
	d.ProcessedAt = &at

	return nil
}

// MarkFailed records a processing failure.
func (d *ScrapedData) MarkFailed(at time.Time, message string) error {
	if d.Status != StatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusFailed)
	}

	d.Status = StatusFailed
	d.ProcessedAt = &at
	d.ErrorMessage = &message

	return nil
}

// MarkIgnored drops a record that has not been processed yet.
func (d *ScrapedData) MarkIgnored() error {
	if d.EffectiveStatus() != StatusCollected {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, StatusIgnored)
	}

	d.Status = StatusIgnored

	return nil
}

func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate record: %w", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}

	return fmt.Errorf("validate record: %s: %w", strings.Join(messages, "; "), err)
}
