package services

import (
	"context"
	"sync"

	"partyplanner/internal/domain"
)

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "ev-new"
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.OwnerID == ownerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// mockInvitationRepository keeps invitations by code and honors the
// conditional-update contract, so the race semantics of the real repository
// hold in tests.
type mockInvitationRepository struct {
	mu         sync.Mutex
	byCode     map[string]*domain.Invitation
	createErrs []error // consumed per Create call before default behavior
	nextID     int
}

func (m *mockInvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.byCode == nil {
		m.byCode = map[string]*domain.Invitation{}
	}
	if _, exists := m.byCode[inv.InviteCode]; exists {
		return domain.ErrDuplicateCode
	}
	m.nextID++
	inv.ID = "inv-" + string(rune('0'+m.nextID))
	cp := *inv
	m.byCode[inv.InviteCode] = &cp
	return nil
}

func (m *mockInvitationRepository) GetByCode(ctx context.Context, inviteCode string) (*domain.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byCode[inviteCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *mockInvitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Invitation{}
	for _, inv := range m.byCode {
		if inv.EventID == eventID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockInvitationRepository) UpdateStatusIfPending(ctx context.Context, inviteCode string, status domain.RSVPStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byCode[inviteCode]
	if !ok || inv.Status != domain.StatusPending {
		return false, nil
	}
	inv.Status = status
	return true, nil
}

// mockSubmissionRepository increments under a lock, matching the atomicity of
// the real storage-level bump.
type mockSubmissionRepository struct {
	mu     sync.Mutex
	byID   map[string]*domain.Submission
	nextID int
	err    error
}

func (m *mockSubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.byID == nil {
		m.byID = map[string]*domain.Submission{}
	}
	m.nextID++
	sub.ID = "sub-" + string(rune('0'+m.nextID))
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *mockSubmissionRepository) ListByEventID(ctx context.Context, kind domain.SubmissionKind, eventID string) ([]*domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*domain.Submission{}
	for _, sub := range m.byID {
		if sub.EventID == eventID && sub.Kind == kind {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepository) IncrementVotes(ctx context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	sub, ok := m.byID[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	sub.Votes++
	return sub.Votes, nil
}

type mockEmailService struct {
	mu   sync.Mutex
	sent []string // recipient addresses
	err  error
}

func (m *mockEmailService) SendInvitation(ctx context.Context, email string, data *domain.InvitationEmailData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}
