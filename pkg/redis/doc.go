// Package redis connects the application to its shared cache backend.
//
// The package wraps the go-redis client with a retrying Connect and a
// health-check helper. Configuration comes from environment variables via
// github.com/caarlos0/env; an empty REDIS_URL means the shared backend is
// unconfigured, and the caller should run on the in-process cache fallback
// instead of failing startup.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        // degrade to the in-process store, do not terminate
//	    }
//	    defer client.Close()
//	}
//
// Register a health-check in your observability stack:
//
//	checker := redis.Healthcheck(client)
//	if err := checker(ctx); err != nil {
//	    // redis is not healthy
//	}
//
// # Errors
//
// The package defines sentinel errors (e.g. ErrRedisNotReady) that wrap the
// underlying go-redis errors using errors.Join for comparison with errors.Is.
package redis
