// Package cacheinfra provides the cache.Store backends: Redis for networked
// deployments and an in-process sturdyc store for single-node use and tests.
package cacheinfra

import "time"

// Config holds the settings shared by the in-process cache backend.
type Config struct {
	// Capacity is the maximum number of entries the in-process cache holds.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Must be greater than 0.
	NumShards int

	// TTL is the expiry applied to every entry. The pipeline uses a single
	// fixed TTL, so it is a property of the store, not of individual writes.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is what percentage of entries to evict when the
	// cache reaches capacity. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultConfig returns a Config sized for a single scrapsd process.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                60 * time.Second,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
