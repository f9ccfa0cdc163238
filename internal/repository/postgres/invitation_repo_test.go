package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"partyplanner/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestInvitationRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		inv     *domain.Invitation
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			inv: domain.NewInvitation("ev-1", "code-abc", "Ada", "ada@example.com",
				time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations \(event_id, invite_code, guest_name, guest_email, status, created_at\)`).
					WithArgs("ev-1", "code-abc", "Ada", "ada@example.com", domain.StatusPending,
						time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-uuid-1"))
			},
			wantID: "inv-uuid-1",
		},
		{
			name: "duplicate code",
			inv: domain.NewInvitation("ev-1", "code-abc", "Ada", "ada@example.com",
				time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateCode,
		},
		{
			name: "db error",
			inv: domain.NewInvitation("ev-1", "code-abc", "Ada", "ada@example.com",
				time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			err = repo.Create(ctx, tt.inv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.inv.ID)
			require.Equal(t, domain.StatusPending, tt.inv.Status)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		code    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Invitation
		wantErr error
	}{
		{
			name: "success",
			code: "code-abc",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at`).
					WithArgs("code-abc").
					WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "invite_code", "guest_name", "guest_email", "status", "created_at"}).
						AddRow("inv-1", "ev-1", "code-abc", "Ada", "ada@example.com", "accepted", created))
			},
			want: &domain.Invitation{
				ID:         "inv-1",
				EventID:    "ev-1",
				InviteCode: "code-abc",
				GuestName:  "Ada",
				GuestEmail: "ada@example.com",
				Status:     domain.StatusAccepted,
				CreatedAt:  created,
			},
		},
		{
			name: "not found",
			code: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			got, err := repo.GetByCode(ctx, tt.code)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "invite_code", "guest_name", "guest_email", "status", "created_at"}).
			AddRow("inv-2", "ev-1", "code-2", "Grace", "", "pending", created.Add(time.Hour)).
			AddRow("inv-1", "ev-1", "code-1", "Ada", "ada@example.com", "declined", created))

	repo := NewInvitationRepository(db)
	invs, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, invs, 2)
	require.Equal(t, "inv-2", invs[0].ID)
	require.Equal(t, domain.StatusDeclined, invs[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_ListByEventID_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, invite_code, guest_name, guest_email, status, created_at`).
		WithArgs("ev-none").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "invite_code", "guest_name", "guest_email", "status", "created_at"}))

	repo := NewInvitationRepository(db)
	invs, err := repo.ListByEventID(context.Background(), "ev-none")
	require.NoError(t, err)
	require.NotNil(t, invs)
	require.Empty(t, invs)
}

func TestInvitationRepository_UpdateStatusIfPending(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantChanged bool
		wantErr     bool
	}{
		{
			name: "pending row transitions",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE invitations`).
					WithArgs("code-abc", domain.StatusAccepted).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantChanged: true,
		},
		{
			name: "already terminal matches nothing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE invitations`).
					WithArgs("code-abc", domain.StatusAccepted).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantChanged: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE invitations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewInvitationRepository(db)
			changed, err := repo.UpdateStatusIfPending(ctx, "code-abc", domain.StatusAccepted)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantChanged, changed)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
