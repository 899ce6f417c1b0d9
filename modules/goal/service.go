package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type repository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Goal, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Goal, error)
	Create(ctx context.Context, g *Goal) error
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service composes the goal read/write paths: identity → rate limit →
// cached query → decryption on reads, encryption → write → invalidation
// on writes.
type Service struct {
	repo    repository
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	codec   *sessionkey.Codec
}

func NewService(repo repository, c *cache.Cache, limiter *ratelimit.Limiter, codec *sessionkey.Codec) *Service {
	return &Service{repo: repo, cache: c, limiter: limiter, codec: codec}
}

// List returns one page of the user's goals, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Goal, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allow(ctx, userID) {
		return nil, ErrRateLimited
	}

	goals, err := cache.Query(ctx, s.cache, Entity,
		cache.Key(Entity, userID.String(), limit, offset),
		func(ctx context.Context) ([]Goal, error) {
			return s.repo.List(ctx, userID, limit, offset)
		})
	if err != nil {
		return nil, err
	}

	for i := range goals {
		s.decrypt(ctx, &goals[i])
	}
	return goals, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Goal, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return Goal{}, err
	}
	if !s.allow(ctx, userID) {
		return Goal{}, ErrRateLimited
	}

	g, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Goal{}, err
	}
	s.decrypt(ctx, &g)
	return g, nil
}

func (s *Service) Create(ctx context.Context, g *Goal) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	g.ID = uuid.New()
	g.UserID = userID
	g.Progress = clamp(g.Progress)

	stored := *g
	s.encrypt(ctx, &stored)

	if err := s.repo.Create(ctx, &stored); err != nil {
		return err
	}
	g.CreatedAt = stored.CreatedAt
	g.UpdatedAt = stored.UpdatedAt

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

func (s *Service) Update(ctx context.Context, g *Goal) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	g.UserID = userID
	g.Progress = clamp(g.Progress)

	stored := *g
	s.encrypt(ctx, &stored)

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

func (s *Service) encrypt(ctx context.Context, g *Goal) {
	g.Name = s.codec.EncryptField(ctx, g.Name).Value
	if g.Notes != "" {
		g.Notes = s.codec.EncryptField(ctx, g.Notes).Value
	}
}

func (s *Service) decrypt(ctx context.Context, g *Goal) {
	g.Name = s.codec.DecryptField(ctx, g.Name).Value
	if g.Notes != "" {
		g.Notes = s.codec.DecryptField(ctx, g.Notes).Value
	}
}

func clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
