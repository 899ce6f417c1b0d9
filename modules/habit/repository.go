package habit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/codingraft/FlowHaven/pkg/pg"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists habits. Encrypted fields (name, notes) are stored
// verbatim as text blobs.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Habit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, notes, frequency, streak, last_checked_at, created_at, updated_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]Habit, 0, limit)
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Notes, &h.Frequency, &h.Streak, &h.LastCheckedAt, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (Habit, error) {
	var h Habit
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, notes, frequency, streak, last_checked_at, created_at, updated_at
		FROM habits
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.Notes, &h.Frequency, &h.Streak, &h.LastCheckedAt, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Habit{}, ErrNotFound
		}
		return Habit{}, err
	}
	return h, nil
}

func (r *Repository) Create(ctx context.Context, h *Habit) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO habits (id, user_id, name, notes, frequency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING streak, created_at, updated_at`,
		h.ID, h.UserID, h.Name, h.Notes, h.Frequency,
	).Scan(&h.Streak, &h.CreatedAt, &h.UpdatedAt)
}

func (r *Repository) Update(ctx context.Context, h *Habit) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE habits
		SET name = $3, notes = $4, frequency = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		h.ID, h.UserID, h.Name, h.Notes, h.Frequency)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckIn increments the streak and stamps the check-in time in one
// statement so concurrent check-ins cannot lose an increment.
func (r *Repository) CheckIn(ctx context.Context, userID, id uuid.UUID) (Habit, error) {
	var h Habit
	err := r.db.QueryRow(ctx, `
		UPDATE habits
		SET streak = streak + 1, last_checked_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, notes, frequency, streak, last_checked_at, created_at, updated_at`,
		id, userID,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.Notes, &h.Frequency, &h.Streak, &h.LastCheckedAt, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Habit{}, ErrNotFound
		}
		return Habit{}, err
	}
	return h, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
