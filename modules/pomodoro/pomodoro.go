package pomodoro

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entity is the cache key namespace for pomodoro queries.
const Entity = "pomodoro"

// recentWindow bounds the ListRecent query. Focus stats only care about
// the last week of sessions.
const recentWindow = 7 * 24 * time.Hour

// Session is one completed focus interval. Nothing here is sensitive, so
// no field is encrypted.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Label     string    `json:"label,omitempty"`
	Minutes   int       `json:"minutes"`
	StartedAt time.Time `json:"started_at"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound    = errors.New("pomodoro.not_found")
	ErrRateLimited = errors.New("pomodoro.rate_limited")
	ErrBadDuration = errors.New("pomodoro.bad_duration")
)
