package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entity is the cache key namespace for journal queries.
const Entity = "journal"

// Entry is a dated journal record. Content is the most sensitive field in
// the system and is always encrypted at rest.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	EntryDate time.Time `json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound    = errors.New("journal.not_found")
	ErrRateLimited = errors.New("journal.rate_limited")
)
