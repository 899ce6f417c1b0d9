package habit

import (
	"context"

	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type repository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Habit, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Habit, error)
	Create(ctx context.Context, h *Habit) error
	Update(ctx context.Context, h *Habit) error
	CheckIn(ctx context.Context, userID, id uuid.UUID) (Habit, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service composes the habit read/write paths the same way tasks are
// handled: identity → rate limit → cached query → decryption on reads,
// encryption → write → invalidation on writes.
type Service struct {
	repo    repository
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	codec   *sessionkey.Codec
}

func NewService(repo repository, c *cache.Cache, limiter *ratelimit.Limiter, codec *sessionkey.Codec) *Service {
	return &Service{repo: repo, cache: c, limiter: limiter, codec: codec}
}

// List returns one page of the user's habits, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Habit, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allow(ctx, userID) {
		return nil, ErrRateLimited
	}

	habits, err := cache.Query(ctx, s.cache, Entity,
		cache.Key(Entity, userID.String(), limit, offset),
		func(ctx context.Context) ([]Habit, error) {
			return s.repo.List(ctx, userID, limit, offset)
		})
	if err != nil {
		return nil, err
	}

	for i := range habits {
		s.decrypt(ctx, &habits[i])
	}
	return habits, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Habit, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return Habit{}, err
	}
	if !s.allow(ctx, userID) {
		return Habit{}, ErrRateLimited
	}

	h, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Habit{}, err
	}
	s.decrypt(ctx, &h)
	return h, nil
}

func (s *Service) Create(ctx context.Context, h *Habit) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	h.ID = uuid.New()
	h.UserID = userID
	if h.Frequency == "" {
		h.Frequency = "daily"
	}

	stored := *h
	s.encrypt(ctx, &stored)

	if err := s.repo.Create(ctx, &stored); err != nil {
		return err
	}
	h.Streak = stored.Streak
	h.CreatedAt = stored.CreatedAt
	h.UpdatedAt = stored.UpdatedAt

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

func (s *Service) Update(ctx context.Context, h *Habit) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	h.UserID = userID

	stored := *h
	s.encrypt(ctx, &stored)

	if err := s.repo.Update(ctx, &stored); err != nil {
		return err
	}

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

// CheckIn records a completion for the habit and returns the updated
// record with fields decrypted.
func (s *Service) CheckIn(ctx context.Context, id uuid.UUID) (Habit, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return Habit{}, err
	}

	h, err := s.repo.CheckIn(ctx, userID, id)
	if err != nil {
		return Habit{}, err
	}

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	s.decrypt(ctx, &h)
	return h, nil
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

func (s *Service) encrypt(ctx context.Context, h *Habit) {
	h.Name = s.codec.EncryptField(ctx, h.Name).Value
	if h.Notes != "" {
		h.Notes = s.codec.EncryptField(ctx, h.Notes).Value
	}
}

func (s *Service) decrypt(ctx context.Context, h *Habit) {
	h.Name = s.codec.DecryptField(ctx, h.Name).Value
	if h.Notes != "" {
		h.Notes = s.codec.DecryptField(ctx, h.Notes).Value
	}
}
