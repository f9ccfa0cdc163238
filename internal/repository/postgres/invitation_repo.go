package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"partyplanner/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, invite_code, guest_name, guest_email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		inv.EventID, inv.InviteCode, inv.GuestName, inv.GuestEmail, inv.Status, inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetByCode(ctx context.Context, inviteCode string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at
		FROM invitations
		WHERE invite_code = $1
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, inviteCode).Scan(
		&inv.ID, &inv.EventID, &inv.InviteCode, &inv.GuestName, &inv.GuestEmail, &inv.Status, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `
		SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.InviteCode, &inv.GuestName, &inv.GuestEmail, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// UpdateStatusIfPending applies the one-shot transition as a single conditional
// write. The WHERE clause makes the first response win: a second caller matches
// zero rows and the stored status stays untouched.
func (r *invitationRepository) UpdateStatusIfPending(ctx context.Context, inviteCode string, status domain.RSVPStatus) (bool, error) {
	query := `
		UPDATE invitations
		SET status = $2
		WHERE invite_code = $1 AND status = 'pending'
	`
	result, err := r.DB.ExecContext(ctx, query, inviteCode, status)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
