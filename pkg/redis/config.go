package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // ConnectionURL is the backend address in the format "redis://:password@localhost:6379/0". Empty disables the shared backend.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of attempts to connect before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"` // ConnectTimeout bounds the whole connection phase.
}

// Enabled reports whether a shared backend is configured at all. An
// unconfigured backend is not an error: the cache layer falls back to its
// in-process store.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
