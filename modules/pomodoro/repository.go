package pomodoro

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists pomodoro sessions.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// ListSince returns the user's sessions started at or after the cutoff,
// newest first.
func (r *Repository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Session, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, label, minutes, started_at, created_at
		FROM pomodoro_sessions
		WHERE user_id = $1 AND started_at >= $2
		ORDER BY started_at DESC`,
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Label, &s.Minutes, &s.StartedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repository) Create(ctx context.Context, s *Session) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO pomodoro_sessions (id, user_id, label, minutes, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		s.ID, s.UserID, s.Label, s.Minutes, s.StartedAt,
	).Scan(&s.CreatedAt)
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM pomodoro_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
