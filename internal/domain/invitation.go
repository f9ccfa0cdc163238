package domain

import (
	"context"
	"time"
)

// RSVPStatus is the lifecycle state of an invitation. Pending is the initial
// state; Accepted and Declined are terminal and never left once entered.
type RSVPStatus string

const (
	StatusPending  RSVPStatus = "pending"
	StatusAccepted RSVPStatus = "accepted"
	StatusDeclined RSVPStatus = "declined"
)

// Terminal reports whether the status is a final RSVP decision.
func (s RSVPStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// ParseDecision validates a guest's response. Only the two terminal states are
// valid decisions; anything else (including "pending") is ErrInvalidInput.
func ParseDecision(s string) (RSVPStatus, error) {
	switch RSVPStatus(s) {
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusDeclined:
		return StatusDeclined, nil
	}
	return "", ErrInvalidInput
}

// Invitation represents a single guest's invite to an event. The invite code
// is the public address of the response page and is globally unique.
// swagger:model Invitation
type Invitation struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	InviteCode string     `json:"invite_code"`
	GuestName  string     `json:"guest_name"`
	GuestEmail string     `json:"guest_email"`
	Status     RSVPStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewInvitation creates a Pending invitation. ID is set by the repository on create.
func NewInvitation(eventID, inviteCode, guestName, guestEmail string, createdAt time.Time) *Invitation {
	return &Invitation{
		EventID:    eventID,
		InviteCode: inviteCode,
		GuestName:  guestName,
		GuestEmail: guestEmail,
		Status:     StatusPending,
		CreatedAt:  createdAt,
	}
}

// InvitationRepository defines storage operations for invitations.
// Create returns ErrDuplicateCode when the invite code collides with an
// existing one. UpdateStatusIfPending performs the one-shot status transition
// as a single conditional write and reports whether a row actually moved;
// false with a nil error means the invitation was already in a terminal state.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByCode(ctx context.Context, inviteCode string) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	UpdateStatusIfPending(ctx context.Context, inviteCode string, status RSVPStatus) (bool, error)
}

// ResolvedInvitation bundles an invitation with its owning event, as shown on
// the guest's response page.
type ResolvedInvitation struct {
	Event      *Event      `json:"event"`
	Invitation *Invitation `json:"invitation"`
}

// InvitationService manages the invitation lifecycle.
type InvitationService interface {
	CreateInvitation(ctx context.Context, eventID, guestName, guestEmail string) (*Invitation, error)
	Resolve(ctx context.Context, inviteCode string) (*ResolvedInvitation, error)
	Respond(ctx context.Context, inviteCode string, decision RSVPStatus) (*Invitation, bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Invitation, error)
	InviteLink(inviteCode string) string
}
