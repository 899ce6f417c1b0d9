package habit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entity is the cache key namespace for habit queries.
const Entity = "habits"

// Habit is a recurring practice the user tracks. Name and Notes are
// encrypted at rest.
type Habit struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Name          string     `json:"name"`
	Notes         string     `json:"notes,omitempty"`
	Frequency     string     `json:"frequency"` // daily, weekly
	Streak        int        `json:"streak"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

var (
	ErrNotFound    = errors.New("habit.not_found")
	ErrRateLimited = errors.New("habit.rate_limited")
)
