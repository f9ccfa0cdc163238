package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"partyplanner/internal/domain"
)

// createCodeRetries bounds how many fresh codes we try when an insert hits the
// unique index. With 128-bit codes a single retry is already unheard of.
const createCodeRetries = 3

type invitationService struct {
	invitationRepo domain.InvitationRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	baseURL        string
	contextTimeout time.Duration
}

// NewInvitationService creates an InvitationService. baseURL is the public
// origin used to build response links; emailService may be nil to skip
// invitation emails.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	baseURL string,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		baseURL:        strings.TrimRight(baseURL, "/"),
		contextTimeout: timeout,
	}
}

func (s *invitationService) CreateInvitation(ctx context.Context, eventID, guestName, guestEmail string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var inv *domain.Invitation
	for attempt := 0; ; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return nil, err
		}
		inv = domain.NewInvitation(eventID, code, guestName, guestEmail, time.Now())
		err = s.invitationRepo.Create(ctx, inv)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateCode) && attempt < createCodeRetries {
			s.logger.WarnContext(ctx, "invite code collision, regenerating", "event_id", eventID)
			continue
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	if s.emailService != nil && inv.GuestEmail != "" {
		data := &domain.InvitationEmailData{
			GuestName:  inv.GuestName,
			EventTitle: event.Title,
			InviteLink: s.InviteLink(inv.InviteCode),
		}
		// Best effort: the invitation exists either way and the organizer can
		// still copy the link from the invite table.
		if err := s.emailService.SendInvitation(ctx, inv.GuestEmail, data); err != nil {
			s.logger.WarnContext(ctx, "invitation email failed", "invitation_id", inv.ID, "err", err)
		}
	}
	return inv, nil
}

func (s *invitationService) Resolve(ctx context.Context, inviteCode string) (*domain.ResolvedInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation by code: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &domain.ResolvedInvitation{Event: event, Invitation: inv}, nil
}

// Respond applies the guest's decision. The first call that finds the
// invitation pending wins; any later call (double click, reload, changed mind)
// mutates nothing and gets the stored status back with changed=false.
func (s *invitationService) Respond(ctx context.Context, inviteCode string, decision domain.RSVPStatus) (*domain.Invitation, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !decision.Terminal() {
		return nil, false, domain.ErrInvalidInput
	}

	inv, err := s.invitationRepo.GetByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get invitation by code: %w", err)
	}
	if inv.Status.Terminal() {
		return inv, false, nil
	}

	changed, err := s.invitationRepo.UpdateStatusIfPending(ctx, inviteCode, decision)
	if err != nil {
		return nil, false, fmt.Errorf("update invitation status: %w", err)
	}
	if !changed {
		// Lost the race to another response between read and write; report
		// whatever won.
		inv, err = s.invitationRepo.GetByCode(ctx, inviteCode)
		if err != nil {
			return nil, false, fmt.Errorf("reload invitation: %w", err)
		}
		return inv, false, nil
	}
	inv.Status = decision
	return inv, true, nil
}

func (s *invitationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invs, nil
}

// InviteLink builds the public response link for a code. The format is load
// bearing: guests reach their response page only through it.
func (s *invitationService) InviteLink(inviteCode string) string {
	return s.baseURL + "/respond/" + inviteCode
}
