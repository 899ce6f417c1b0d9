// Package config loads typed configuration structs from environment
// variables, with optional .env file support for development.
//
// Each struct type is parsed once per process and cached, so every component
// asking for the same Config gets the same values without re-reading the
// environment.
//
//	type CacheConfig struct {
//	    DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"5m"`
//	}
//
//	var cfg CacheConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics on failure, for configuration without which the process
// cannot start.
package config
