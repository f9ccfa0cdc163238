package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyplanner/internal/domain"
)

func newTestSubmissionService(subRepo *mockSubmissionRepository, evRepo *mockEventRepository) domain.SubmissionService {
	return NewSubmissionService(subRepo, evRepo, time.Second)
}

func eventRepoWith(id string) *mockEventRepository {
	return &mockEventRepository{events: map[string]*domain.Event{
		id: {ID: id, Title: "Halloween Bash"},
	}}
}

func TestSubmit_Track(t *testing.T) {
	ctx := context.Background()
	subRepo := &mockSubmissionRepository{}
	svc := newTestSubmissionService(subRepo, eventRepoWith("ev-1"))

	sub, err := svc.Submit(ctx, domain.KindTrack, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "spotify:track:4cOdK2wGLETKBW3PvgPWqT",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://open.spotify.com/track/4cOdK2wGLETKBW3PvgPWqT", sub.URL,
		"stored form is the canonical web URL, not the raw input")
	assert.Equal(t, 0, sub.Votes)
	assert.Equal(t, domain.KindTrack, sub.Kind)
}

func TestSubmit_TrackRejectedBeforePersistence(t *testing.T) {
	ctx := context.Background()
	subRepo := &mockSubmissionRepository{}
	svc := newTestSubmissionService(subRepo, eventRepoWith("ev-1"))

	_, err := svc.Submit(ctx, domain.KindTrack, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "not-a-track",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, subRepo.byID, "a rejected payload must never reach storage")
}

func TestSubmit_Costume(t *testing.T) {
	ctx := context.Background()
	svc := newTestSubmissionService(&mockSubmissionRepository{}, eventRepoWith("ev-1"))

	sub, err := svc.Submit(ctx, domain.KindCostume, "ev-1", "user-1", domain.SubmissionPayload{
		URL:     "https://img.example.com/vampire.jpg",
		Caption: "Vampire",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vampire", sub.Caption)

	// Costumes require a title.
	_, err = svc.Submit(ctx, domain.KindCostume, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "https://img.example.com/vampire.jpg",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_Photo(t *testing.T) {
	ctx := context.Background()
	svc := newTestSubmissionService(&mockSubmissionRepository{}, eventRepoWith("ev-1"))

	// Caption is optional for photos.
	sub, err := svc.Submit(ctx, domain.KindPhoto, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "https://img.example.com/party.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, sub.Caption)

	_, err = svc.Submit(ctx, domain.KindPhoto, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "file:///etc/passwd",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_EventNotFound(t *testing.T) {
	ctx := context.Background()
	subRepo := &mockSubmissionRepository{}
	svc := newTestSubmissionService(subRepo, &mockEventRepository{})

	_, err := svc.Submit(ctx, domain.KindPhoto, "ev-missing", "user-1", domain.SubmissionPayload{
		URL: "https://img.example.com/party.jpg",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, subRepo.byID)
}

func TestSubmit_UnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := newTestSubmissionService(&mockSubmissionRepository{}, eventRepoWith("ev-1"))

	_, err := svc.Submit(ctx, domain.SubmissionKind("poem"), "ev-1", "user-1", domain.SubmissionPayload{
		URL: "https://img.example.com/party.jpg",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVote_NotFound(t *testing.T) {
	svc := newTestSubmissionService(&mockSubmissionRepository{}, eventRepoWith("ev-1"))
	_, err := svc.Vote(context.Background(), "sub-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// N concurrent votes must always land as initial + N.
func TestVote_ConcurrentIncrementsAreNeverLost(t *testing.T) {
	ctx := context.Background()
	subRepo := &mockSubmissionRepository{}
	svc := newTestSubmissionService(subRepo, eventRepoWith("ev-1"))

	sub, err := svc.Submit(ctx, domain.KindTrack, "ev-1", "user-1", domain.SubmissionPayload{
		URL: "4cOdK2wGLETKBW3PvgPWqT",
	})
	require.NoError(t, err)

	const voters = 100
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Vote(ctx, sub.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("vote failed: %v", err)
	}

	subs, err := svc.ListByEvent(ctx, domain.KindTrack, "ev-1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, voters, subs[0].Votes)
}
