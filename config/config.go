// Package config loads process configuration from an optional TOML file and
// a handful of environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

// Cache backend selectors.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config carries everything the server process needs. Durations are TOML
// strings ("10s", "1h") decoded through the duration wrapper.
type Config struct {
	HTTPAddr       string   `toml:"http_addr"`
	RequestTimeout Duration `toml:"request_timeout"`

	DatabaseURL string `toml:"database_url"`

	CacheBackend string   `toml:"cache_backend"`
	RedisURL     string   `toml:"redis_url"`
	CacheTTL     Duration `toml:"cache_ttl"`

	JWTSecret     string   `toml:"jwt_secret"`
	TokenLifetime Duration `toml:"token_lifetime"`
}

// Duration makes time.Duration TOML-friendly.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file or override says
// otherwise.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		RequestTimeout: Duration{10 * time.Second},
		CacheBackend:   BackendMemory,
		CacheTTL:       Duration{60 * time.Second},
		TokenLifetime:  Duration{time.Hour},
	}
}

// Load reads the TOML file at path (skipped when path is empty), applies
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv folds in the deployment-facing environment variables. They win
// over the file.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.HTTPAddr = ":" + port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.DatabaseURL = dsn
	}
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		c.RedisURL = addr
		c.CacheBackend = BackendRedis
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.CacheBackend, validation.Required,
			validation.In(BackendMemory, BackendRedis)),
		validation.Field(&c.RedisURL,
			validation.Required.When(c.CacheBackend == BackendRedis).
				Error("is required when cache_backend is redis")),
		validation.Field(&c.JWTSecret, validation.Required),
	)
}
