package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// State describes the circuit breaker's view of the shared backend.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// FallbackStore wraps a shared primary backend (Redis) and demotes to an
// in-process fallback after consecutive failures, so a degraded backend is
// never a hard dependency.
//
// Reconnection follows disconnected → connecting → connected with a bounded
// number of probe attempts; once exhausted, the store serves from the
// fallback for the remaining process lifetime. A cache miss is never counted
// as a failure.
type FallbackStore struct {
	primary  Store
	fallback Store
	log      *slog.Logger

	failureThreshold int
	maxReconnects    int
	probeInterval    time.Duration

	mu         sync.Mutex
	state      State
	failures   int
	reconnects int
	permanent  bool
	lastProbe  time.Time
}

// FallbackOption configures a FallbackStore.
type FallbackOption func(*FallbackStore)

// WithFailureThreshold sets how many consecutive primary failures demote the
// backend. Default 3.
func WithFailureThreshold(n int) FallbackOption {
	return func(s *FallbackStore) {
		if n > 0 {
			s.failureThreshold = n
		}
	}
}

// WithMaxReconnects bounds reconnect probes before the fallback becomes
// permanent. Default 5.
func WithMaxReconnects(n int) FallbackOption {
	return func(s *FallbackStore) {
		if n > 0 {
			s.maxReconnects = n
		}
	}
}

// WithProbeInterval sets the minimum time between reconnect probes.
// Default 30s.
func WithProbeInterval(d time.Duration) FallbackOption {
	return func(s *FallbackStore) {
		if d > 0 {
			s.probeInterval = d
		}
	}
}

// WithFallbackLogger sets the logger for state transitions.
func WithFallbackLogger(log *slog.Logger) FallbackOption {
	return func(s *FallbackStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewFallbackStore creates the circuit-breaker wrapper. A nil primary means
// the shared backend is unconfigured and the fallback serves everything.
func NewFallbackStore(primary, fallback Store, opts ...FallbackOption) *FallbackStore {
	s := &FallbackStore{
		primary:          primary,
		fallback:         fallback,
		log:              slog.Default(),
		failureThreshold: 3,
		maxReconnects:    5,
		probeInterval:    30 * time.Second,
		state:            StateConnected,
	}
	for _, opt := range opts {
		opt(s)
	}

	if primary == nil {
		s.state = StateDisconnected
		s.permanent = true
	}
	return s
}

// State returns the current backend connection state.
func (s *FallbackStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// active picks the store to serve the next operation, probing the primary
// when a reconnect attempt is due.
func (s *FallbackStore) active(ctx context.Context) Store {
	s.mu.Lock()

	if s.state == StateConnected {
		s.mu.Unlock()
		return s.primary
	}
	if s.permanent || s.reconnects >= s.maxReconnects || time.Since(s.lastProbe) < s.probeInterval {
		if !s.permanent && s.reconnects >= s.maxReconnects {
			s.permanent = true
			s.log.Warn("cache backend reconnect attempts exhausted, falling back permanently")
		}
		s.mu.Unlock()
		return s.fallback
	}

	s.state = StateConnecting
	s.lastProbe = time.Now()
	s.mu.Unlock()

	if err := s.primary.Ping(ctx); err != nil {
		s.mu.Lock()
		s.state = StateDisconnected
		s.reconnects++
		s.mu.Unlock()
		s.log.Warn("cache backend probe failed", "error", err)
		return s.fallback
	}

	s.mu.Lock()
	s.state = StateConnected
	s.failures = 0
	s.mu.Unlock()
	s.log.Info("cache backend reconnected")
	return s.primary
}

// observe counts consecutive primary failures and demotes after the
// threshold. Cache misses do not count.
func (s *FallbackStore) observe(err error) {
	if err == nil || errors.Is(err, ErrCacheMiss) {
		s.mu.Lock()
		s.failures = 0
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.failures++
	demote := s.state == StateConnected && s.failures >= s.failureThreshold
	if demote {
		s.state = StateDisconnected
	}
	s.mu.Unlock()

	if demote {
		s.log.Warn("cache backend demoted to in-process store", "error", err)
	}
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	store := s.active(ctx)
	value, err := store.Get(ctx, key)
	if store == s.primary {
		s.observe(err)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			return s.fallback.Get(ctx, key)
		}
	}
	return value, err
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	store := s.active(ctx)
	err := store.Set(ctx, key, value, ttl)
	if store == s.primary {
		s.observe(err)
		if err != nil {
			return s.fallback.Set(ctx, key, value, ttl)
		}
	}
	return err
}

func (s *FallbackStore) Delete(ctx context.Context, keys ...string) error {
	store := s.active(ctx)
	err := store.Delete(ctx, keys...)
	if store == s.primary {
		s.observe(err)
		if err != nil {
			return s.fallback.Delete(ctx, keys...)
		}
	}
	return err
}

func (s *FallbackStore) DeletePrefix(ctx context.Context, prefix string) error {
	store := s.active(ctx)
	err := store.DeletePrefix(ctx, prefix)
	if store == s.primary {
		s.observe(err)
		if err != nil {
			return s.fallback.DeletePrefix(ctx, prefix)
		}
	}
	return err
}

func (s *FallbackStore) Incr(ctx context.Context, key string) (int64, error) {
	store := s.active(ctx)
	value, err := store.Incr(ctx, key)
	if store == s.primary {
		s.observe(err)
		if err != nil {
			return s.fallback.Incr(ctx, key)
		}
	}
	return value, err
}

func (s *FallbackStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	store := s.active(ctx)
	err := store.Expire(ctx, key, ttl)
	if store == s.primary {
		s.observe(err)
		if err != nil {
			return s.fallback.Expire(ctx, key, ttl)
		}
	}
	return err
}

func (s *FallbackStore) Ping(ctx context.Context) error {
	return s.active(ctx).Ping(ctx)
}
