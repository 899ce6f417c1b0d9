package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type repository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service composes the task read/write paths: identity resolution →
// rate-limit check → cache-through query → field decryption on reads;
// field encryption → persistence write → cache invalidation on writes.
type Service struct {
	repo    repository
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	codec   *sessionkey.Codec
}

// NewService wires the task service.
func NewService(repo repository, c *cache.Cache, limiter *ratelimit.Limiter, codec *sessionkey.Codec) *Service {
	return &Service{repo: repo, cache: c, limiter: limiter, codec: codec}
}

// List returns one page of the user's tasks, newest first, with sensitive
// fields decrypted. Undecryptable fields pass through as stored.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Task, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allow(ctx, userID) {
		return nil, ErrRateLimited
	}

	tasks, err := cache.Query(ctx, s.cache, Entity,
		cache.Key(Entity, userID.String(), limit, offset),
		func(ctx context.Context) ([]Task, error) {
			return s.repo.List(ctx, userID, limit, offset)
		})
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		s.decrypt(ctx, &tasks[i])
	}
	return tasks, nil
}

// Get returns a single task with sensitive fields decrypted.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return Task{}, err
	}
	if !s.allow(ctx, userID) {
		return Task{}, ErrRateLimited
	}

	t, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Task{}, err
	}
	s.decrypt(ctx, &t)
	return t, nil
}

// Create encrypts the sensitive fields, persists the task, then invalidates
// the user's cached task pages. The persistence write always lands before
// invalidation; a failed write leaves the cache untouched.
func (s *Service) Create(ctx context.Context, t *Task) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	t.ID = uuid.New()
	t.UserID = userID

	stored := *t
	s.encrypt(ctx, &stored)

	if err := s.repo.Create(ctx, &stored); err != nil {
		return err
	}
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = stored.UpdatedAt

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

// Update re-encrypts and persists the task, then invalidates the user's
// cached task pages.
func (s *Service) Update(ctx context.Context, t *Task) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	t.UserID = userID

	stored := *t
	s.encrypt(ctx, &stored)

	if err := s.repo.Update(ctx, &stored); err != nil {
		return err
	}

	s.cache.InvalidateEntity(ctx, Entity, userID.String())
	return nil
}

// Delete removes the task, then invalidates the user's cached task pages.
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

func (s *Service) encrypt(ctx context.Context, t *Task) {
	t.Title = s.codec.EncryptField(ctx, t.Title).Value
	if t.Notes != "" {
		t.Notes = s.codec.EncryptField(ctx, t.Notes).Value
	}
}

func (s *Service) decrypt(ctx context.Context, t *Task) {
	t.Title = s.codec.DecryptField(ctx, t.Title).Value
	if t.Notes != "" {
		t.Notes = s.codec.DecryptField(ctx, t.Notes).Value
	}
}
