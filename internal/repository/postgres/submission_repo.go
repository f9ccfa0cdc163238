package postgres

import (
	"context"
	"database/sql"
	"errors"

	"partyplanner/internal/domain"
)

type submissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{
		DB: db,
	}
}

func (r *submissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (event_id, author_id, kind, url, caption, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sub.EventID, sub.AuthorID, sub.Kind, sub.URL, sub.Caption, sub.Votes, sub.CreatedAt).
		Scan(&sub.ID)
}

func (r *submissionRepository) ListByEventID(ctx context.Context, kind domain.SubmissionKind, eventID string) ([]*domain.Submission, error) {
	query := `
		SELECT id, event_id, author_id, kind, url, caption, votes, created_at
		FROM submissions
		WHERE event_id = $1 AND kind = $2
		ORDER BY votes DESC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*domain.Submission, 0)
	for rows.Next() {
		sub := &domain.Submission{}
		if err := rows.Scan(&sub.ID, &sub.EventID, &sub.AuthorID, &sub.Kind, &sub.URL, &sub.Caption, &sub.Votes, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// IncrementVotes bumps the counter relative to the stored value in one
// statement, so concurrent voters serialize at the row and no update is lost.
func (r *submissionRepository) IncrementVotes(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE submissions
		SET votes = votes + 1
		WHERE id = $1
		RETURNING votes
	`
	var votes int
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return votes, nil
}
