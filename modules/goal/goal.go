package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entity is the cache key namespace for goal queries.
const Entity = "goals"

// Goal is a longer-term objective. Name and Notes are encrypted at rest;
// Progress is a percentage clamped to [0, 100].
type Goal struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Name       string     `json:"name"`
	Notes      string     `json:"notes,omitempty"`
	Progress   int        `json:"progress"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

var (
	ErrNotFound    = errors.New("goal.not_found")
	ErrRateLimited = errors.New("goal.rate_limited")
)
