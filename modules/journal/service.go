package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type repository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Entry, error)
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service composes the journal read/write paths. Entry content is always
// encrypted before persistence, even when empty, since journal text is the
// most sensitive data the app holds.
type Service struct {
	repo    repository
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	codec   *sessionkey.Codec
}

func NewService(repo repository, c *cache.Cache, limiter *ratelimit.Limiter, codec *sessionkey.Codec) *Service {
	return &Service{repo: repo, cache: c, limiter: limiter, codec: codec}
}

// List returns one page of the user's entries, most recent entry date
// first, with content decrypted.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allow(ctx, userID) {
		return nil, ErrRateLimited
	}

	entries, err := cache.Query(ctx, s.cache, Entity,
		cache.Key(Entity, userID.String(), limit, offset),
		func(ctx context.Context) ([]Entry, error) {
			return s.repo.List(ctx, userID, limit, offset)
		})
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Content = s.codec.DecryptField(ctx, entries[i].Content).Value
	}
	return entries, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return Entry{}, err
	}
	if !s.allow(ctx, userID) {
		return Entry{}, ErrRateLimited
	}

	e, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Entry{}, err
	}
	e.Content = s.codec.DecryptField(ctx, e.Content).Value
	return e, nil
}

func (s *Service) Create(ctx context.Context, e *Entry) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	e.ID = uuid.New()
	e.UserID = userID
	if e.EntryDate.IsZero() {
		e.EntryDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	stored := *e
	stored.Content = s.codec.EncryptField(ctx, e.Content).Value

	if err := s.repo.Create(ctx, &stored); err != nil {
		return err
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = stored.UpdatedAt

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

func (s *Service) Update(ctx context.Context, e *Entry) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	e.UserID = userID

	stored := *e
	stored.Content = s.codec.EncryptField(ctx, e.Content).Value

	if err := s.repo.Update(ctx, &stored); err != nil {
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

func (s *Service) allow(ctx context.Context, userID uuid.UUID) bool {
	return s.limiter.Allow(ctx, ratelimit.UserKey(Entity, userID.String())).Allowed
}
