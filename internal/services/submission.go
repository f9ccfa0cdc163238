package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"partyplanner/internal/domain"
)

type submissionService struct {
	submissionRepo domain.SubmissionRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewSubmissionService creates a SubmissionService with the given repositories.
func NewSubmissionService(
	submissionRepo domain.SubmissionRepository,
	eventRepo domain.EventRepository,
	timeout time.Duration,
) domain.SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *submissionService) Submit(ctx context.Context, kind domain.SubmissionKind, eventID, authorID string, payload domain.SubmissionPayload) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}

	// Validation happens before any write; a rejected payload never reaches
	// storage.
	storedURL, caption, err := validatePayload(kind, payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	sub := domain.NewSubmission(kind, eventID, authorID, storedURL, caption, time.Now())
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

func validatePayload(kind domain.SubmissionKind, payload domain.SubmissionPayload) (string, string, error) {
	switch kind {
	case domain.KindTrack:
		canonical, err := NormalizeTrackURL(strings.TrimSpace(payload.URL))
		if err != nil {
			return "", "", err
		}
		return canonical, "", nil
	case domain.KindCostume:
		caption := strings.TrimSpace(payload.Caption)
		if caption == "" {
			return "", "", domain.ErrInvalidInput
		}
		imageURL, err := validImageURL(payload.URL)
		if err != nil {
			return "", "", err
		}
		return imageURL, caption, nil
	case domain.KindPhoto:
		imageURL, err := validImageURL(payload.URL)
		if err != nil {
			return "", "", err
		}
		return imageURL, strings.TrimSpace(payload.Caption), nil
	}
	return "", "", domain.ErrInvalidInput
}

func validImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", domain.ErrInvalidInput
	}
	return raw, nil
}

// ListByEvent returns submissions ordered by votes descending with ties broken
// by insertion order; the repository query carries the ordering.
func (s *submissionService) ListByEvent(ctx context.Context, kind domain.SubmissionKind, eventID string) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	subs, err := s.submissionRepo.ListByEventID(ctx, kind, eventID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// Vote bumps a submission's counter and returns the new count. The increment
// is atomic at the store, so concurrent voters are never lost.
func (s *submissionService) Vote(ctx context.Context, submissionID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	votes, err := s.submissionRepo.IncrementVotes(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment votes: %w", err)
	}
	return votes, nil
}
