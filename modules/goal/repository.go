package goal

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

// Repository persists goals. Encrypted fields (name, notes) are stored
// verbatim as text blobs.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, notes, progress, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]Goal, 0, limit)
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Notes, &g.Progress, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (Goal, error) {
	var g Goal
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, notes, progress, target_date, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Notes, &g.Progress, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return g, nil
}

func (r *Repository) Create(ctx context.Context, g *Goal) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, name, notes, progress, target_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		g.ID, g.UserID, g.Name, g.Notes, g.Progress, g.TargetDate,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
}

func (r *Repository) Update(ctx context.Context, g *Goal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE goals
		SET name = $3, notes = $4, progress = $5, target_date = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Name, g.Notes, g.Progress, g.TargetDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
