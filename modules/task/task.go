package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entity is the cache key namespace for task queries.
const Entity = "tasks"

// Task is a single to-do item. Title and Notes are sensitive fields: they
// are encrypted with the session key before they reach the database and
// decrypted only on the way back out.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Done      bool       `json:"done"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

var (
	// ErrNotFound indicates the task does not exist or belongs to another user
	ErrNotFound = errors.New("task.not_found")

	// ErrRateLimited indicates the user's quota for task operations is spent.
	// This is an ordinary condition, not a failure; callers decide what the
	// user sees.
	ErrRateLimited = errors.New("task.rate_limited")
)
