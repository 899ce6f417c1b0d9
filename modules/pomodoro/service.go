package pomodoro

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
)

type repository interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Session, error)
	Create(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service records focus sessions and serves the recent-session feed. The
// feed is a single non-paginated query per user, so it caches under the
// bare entity key rather than per-page keys.
type Service struct {
	repo    repository
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	now     func() time.Time
}

func NewService(repo repository, c *cache.Cache, limiter *ratelimit.Limiter) *Service {
	return &Service{repo: repo, cache: c, limiter: limiter, now: time.Now}
}

// ListRecent returns the user's sessions from the last seven days.
func (s *Service) ListRecent(ctx context.Context) ([]Session, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if !s.limiter.Allow(ctx, ratelimit.UserKey(Entity, userID.String())).Allowed {
		return nil, ErrRateLimited
	}

	since := s.now().Add(-recentWindow)
	return cache.Query(ctx, s.cache, Entity,
		cache.EntityKey(Entity, userID.String()),
		func(ctx context.Context) ([]Session, error) {
			return s.repo.ListSince(ctx, userID, since)
		})
}

// Log records a completed session.
func (s *Service) Log(ctx context.Context, sess *Session) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	if sess.Minutes <= 0 {
		return ErrBadDuration
	}

	sess.ID = uuid.New()
	sess.UserID = userID
	if sess.StartedAt.IsZero() {
		sess.StartedAt = s.now().Add(-time.Duration(sess.Minutes) * time.Minute)
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return err
	}

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}
