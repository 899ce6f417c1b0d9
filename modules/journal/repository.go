package journal

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

// Repository persists journal entries. Content arrives already encrypted;
// this layer never sees plaintext.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, content, mood, entry_date, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Mood, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (Entry, error) {
	var e Entry
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, content, mood, entry_date, created_at, updated_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Content, &e.Mood, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *Repository) Create(ctx context.Context, e *Entry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO journal_entries (id, user_id, content, mood, entry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		e.ID, e.UserID, e.Content, e.Mood, e.EntryDate,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *Repository) Update(ctx context.Context, e *Entry) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE journal_entries
		SET content = $3, mood = $4, entry_date = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Content, e.Mood, e.EntryDate)
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
		`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
