package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/codingraft/FlowHaven/modules/api"
	"github.com/codingraft/FlowHaven/modules/task"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type memTaskRepo struct {
	tasks map[uuid.UUID]task.Task
}

func (r *memTaskRepo) List(_ context.Context, userID uuid.UUID, limit, _ int) ([]task.Task, error) {
	out := make([]task.Task, 0, limit)
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Get(_ context.Context, userID, id uuid.UUID) (task.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (r *memTaskRepo) Create(_ context.Context, t *task.Task) error {
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, t *task.Task) error {
	if existing, ok := r.tasks[t.ID]; !ok || existing.UserID != t.UserID {
		return task.ErrNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if existing, ok := r.tasks[id]; !ok || existing.UserID != userID {
		return task.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	userLimiter, err := ratelimit.New(store, 1000, time.Minute)
	require.NoError(t, err)
	ipLimiter, err := ratelimit.New(store, 1000, time.Minute)
	require.NoError(t, err)

	salt, err := fieldcrypt.GenerateSalt()
	require.NoError(t, err)
	key, err := fieldcrypt.DeriveKey("router test key", salt)
	require.NoError(t, err)
	keys := sessionkey.New(sessionkey.NewMemoryStorage())
	require.NoError(t, keys.Set(context.Background(), key, salt))

	svc := task.NewService(
		&memTaskRepo{tasks: make(map[uuid.UUID]task.Task)},
		cache.New(store),
		userLimiter,
		sessionkey.NewCodec(keys),
	)

	return api.Router(api.Services{Tasks: svc}, ipLimiter)
}

func doJSON(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.7:4412"
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_TaskCRUD(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	userID := uuid.New().String()

	rec := doJSON(t, h, http.MethodPost, "/tasks", userID, map[string]any{
		"title": "ship the release",
		"notes": "tag first",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created task.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "ship the release", created.Title)
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = doJSON(t, h, http.MethodGet, "/tasks/"+created.ID.String(), userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/tasks?limit=10", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []task.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "ship the release", listed[0].Title)

	rec = doJSON(t, h, http.MethodDelete, "/tasks/"+created.ID.String(), userID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/tasks/"+created.ID.String(), userID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UnauthenticatedGets401(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage identity is treated the same as none.
	rec = doJSON(t, h, http.MethodGet, "/tasks", "not-a-uuid", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_InvalidIDGets400(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/tasks/banana", uuid.New().String(), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UsersCannotReadEachOther(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/tasks", uuid.New().String(), map[string]any{"title": "mine"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created task.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodGet, "/tasks/"+created.ID.String(), uuid.New().String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SetsRateLimitHeaders(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/tasks", uuid.New().String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRouter_IPThrottleReturns429(t *testing.T) {
	t.Parallel()

	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	userLimiter, err := ratelimit.New(store, 1000, time.Minute)
	require.NoError(t, err)
	ipLimiter, err := ratelimit.New(store, 2, time.Minute)
	require.NoError(t, err)

	salt, err := fieldcrypt.GenerateSalt()
	require.NoError(t, err)
	key, err := fieldcrypt.DeriveKey("throttle test", salt)
	require.NoError(t, err)
	keys := sessionkey.New(sessionkey.NewMemoryStorage())
	require.NoError(t, keys.Set(context.Background(), key, salt))

	svc := task.NewService(
		&memTaskRepo{tasks: make(map[uuid.UUID]task.Task)},
		cache.New(store),
		userLimiter,
		sessionkey.NewCodec(keys),
	)
	h := api.Router(api.Services{Tasks: svc}, ipLimiter)

	userID := uuid.New().String()
	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodGet, "/tasks", userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/tasks", userID, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
