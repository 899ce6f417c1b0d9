package task

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

// Repository persists tasks. Encrypted fields (title, notes) are stored
// verbatim as text blobs; the repository never sees plaintext for them.
// Persistence errors propagate to the caller — they are not this layer's to
// swallow.
type Repository struct {
	db DB
}

// NewRepository creates a task repository over the given connection pool.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, notes, done, due_at, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]Task, 0, limit)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Notes, &t.Done, &t.DueAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (Task, error) {
	var t Task
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, title, notes, done, due_at, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Notes, &t.Done, &t.DueAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return t, nil
}

func (r *Repository) Create(ctx context.Context, t *Task) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tasks (id, user_id, title, notes, done, due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		t.ID, t.UserID, t.Title, t.Notes, t.Done, t.DueAt,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *Repository) Update(ctx context.Context, t *Task) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET title = $3, notes = $4, done = $5, due_at = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		t.ID, t.UserID, t.Title, t.Notes, t.Done, t.DueAt)
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
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
