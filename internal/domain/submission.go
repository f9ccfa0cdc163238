package domain

import (
	"context"
	"time"
)

// SubmissionKind distinguishes the three kinds of participant-contributed
// content. All three share the same storage and voting machinery.
type SubmissionKind string

const (
	KindTrack   SubmissionKind = "track"
	KindCostume SubmissionKind = "costume"
	KindPhoto   SubmissionKind = "photo"
)

// Valid reports whether k is a known submission kind.
func (k SubmissionKind) Valid() bool {
	return k == KindTrack || k == KindCostume || k == KindPhoto
}

// Submission is a participant-contributed item attached to an event and
// subject to voting. URL is the canonical track URL for tracks and the image
// URL for costumes and photos. Caption holds the costume title or photo
// caption; it is empty for tracks.
// swagger:model Submission
type Submission struct {
	ID        string         `json:"id"`
	EventID   string         `json:"event_id"`
	AuthorID  string         `json:"author_id"`
	Kind      SubmissionKind `json:"kind"`
	URL       string         `json:"url"`
	Caption   string         `json:"caption,omitempty"`
	Votes     int            `json:"votes"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewSubmission creates a Submission with zero votes. ID is set by the repository on create.
func NewSubmission(kind SubmissionKind, eventID, authorID, url, caption string, createdAt time.Time) *Submission {
	return &Submission{
		EventID:   eventID,
		AuthorID:  authorID,
		Kind:      kind,
		URL:       url,
		Caption:   caption,
		CreatedAt: createdAt,
	}
}

// SubmissionRepository defines storage operations for submissions.
// IncrementVotes bumps the counter atomically at the store and returns the new
// count, so concurrent voters never lose updates.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *Submission) error
	ListByEventID(ctx context.Context, kind SubmissionKind, eventID string) ([]*Submission, error)
	IncrementVotes(ctx context.Context, id string) (int, error)
}

// SubmissionPayload carries the guest-entered fields of a new submission.
type SubmissionPayload struct {
	URL     string
	Caption string
}

// SubmissionService exposes submission and voting operations.
type SubmissionService interface {
	Submit(ctx context.Context, kind SubmissionKind, eventID, authorID string, payload SubmissionPayload) (*Submission, error)
	ListByEvent(ctx context.Context, kind SubmissionKind, eventID string) ([]*Submission, error)
	Vote(ctx context.Context, submissionID string) (int, error)
}
