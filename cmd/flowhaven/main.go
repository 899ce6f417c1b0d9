package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codingraft/FlowHaven/modules/api"
	"github.com/codingraft/FlowHaven/modules/auth"
	"github.com/codingraft/FlowHaven/modules/goal"
	"github.com/codingraft/FlowHaven/modules/habit"
	"github.com/codingraft/FlowHaven/modules/journal"
	"github.com/codingraft/FlowHaven/modules/pomodoro"
	"github.com/codingraft/FlowHaven/modules/task"
	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/config"
	"github.com/codingraft/FlowHaven/pkg/httpserver"
	"github.com/codingraft/FlowHaven/pkg/logger"
	"github.com/codingraft/FlowHaven/pkg/pg"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"
	"github.com/codingraft/FlowHaven/pkg/redis"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"
)

type appConfig struct {
	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"LOG_FORMAT" envDefault:"json"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	KeyStorePath string `env:"SESSION_KEY_PATH" envDefault:".flowhaven/session.json"`

	IPRateLimit   int           `env:"IP_RATE_LIMIT" envDefault:"300"`
	UserRateLimit int           `env:"USER_RATE_LIMIT" envDefault:"120"`
	RateWindow    time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithService("flowhaven"),
		logger.WithLevel(appCfg.LogLevel),
		logger.WithFormat(logger.Format(appCfg.LogFormat)),
		logger.WithContextValue("user_id", auth.CtxKeyUserID),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, pgCfg, redisCfg, httpCfg, log); err != nil {
		log.ErrorContext(ctx, "service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, pgCfg pg.Config, redisCfg redis.Config, httpCfg httpserver.Config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	memStore := cache.NewMemoryStore(time.Minute)
	defer memStore.Close()

	var store cache.Store = memStore
	health := []func(context.Context) error{pg.Healthcheck(pool)}

	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		store = cache.NewFallbackStore(
			cache.NewRedisStore(client), memStore,
			cache.WithFallbackLogger(log),
		)
		health = append(health, redis.Healthcheck(client))
	} else {
		log.InfoContext(ctx, "no shared cache backend configured, using in-process store")
	}

	keyStorage, err := sessionkey.NewFileStorage(appCfg.KeyStorePath)
	if err != nil {
		return err
	}
	keys := sessionkey.New(keyStorage, sessionkey.WithLogger(log))
	if keys.Restore(ctx) {
		log.InfoContext(ctx, "session encryption key recovered from durable storage")
	}
	codec := sessionkey.NewCodec(keys)

	cacheLayer := cache.New(store,
		cache.WithDefaultTTL(appCfg.CacheTTL),
		cache.WithCacheLogger(log),
	)

	userLimiter, err := ratelimit.New(store, appCfg.UserRateLimit, appCfg.RateWindow, ratelimit.WithLogger(log))
	if err != nil {
		return err
	}
	ipLimiter, err := ratelimit.New(store, appCfg.IPRateLimit, appCfg.RateWindow, ratelimit.WithLogger(log))
	if err != nil {
		return err
	}

	svcs := api.Services{
		Tasks:    task.NewService(task.NewRepository(pool), cacheLayer, userLimiter, codec),
		Habits:   habit.NewService(habit.NewRepository(pool), cacheLayer, userLimiter, codec),
		Goals:    goal.NewService(goal.NewRepository(pool), cacheLayer, userLimiter, codec),
		Journal:  journal.NewService(journal.NewRepository(pool), cacheLayer, userLimiter, codec),
		Pomodoro: pomodoro.NewService(pomodoro.NewRepository(pool), cacheLayer, userLimiter),
		Salts:    auth.NewSaltProvider(pool),
		Keys:     keys,
	}

	root := chi.NewRouter()
	root.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	root.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, health...))
	root.Mount("/api/v1", api.Router(svcs, ipLimiter))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "http server listening", "addr", httpCfg.Addr)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "http server stopped")
		}),
	)
	return srv.Run(ctx, root)
}
