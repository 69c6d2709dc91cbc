package scheduler

import (
	"os"
	"strconv"
)

// PoolSizeEnv is the environment variable that overrides the default
// worker pool size for the process
const PoolSizeEnv = "SELF_REFRESHING_CACHE_POOL_SIZE"

const (
	defaultPoolSize      = 10
	defaultQueueCapacity = 64
)

// Config holds configuration for the scheduler worker pool
type Config struct {
	// PoolSize is the number of workers executing due tasks
	// default: 10, overridable process-wide via SELF_REFRESHING_CACHE_POOL_SIZE
	PoolSize int `mapstructure:"pool_size"`
	// QueueCapacity is the initial capacity of the pending task queue
	// The queue itself is unbounded; this only presizes its buffer
	// default: 64
	QueueCapacity int `mapstructure:"queue_capacity"`
}

// DefaultConfig returns the default configuration for the scheduler.
// The default pool size honors the SELF_REFRESHING_CACHE_POOL_SIZE
// environment variable when it holds a positive integer.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:      poolSizeFromEnv(),
		QueueCapacity: defaultQueueCapacity,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.PoolSize < 1 {
		return ErrInvalidPoolSize(c.PoolSize)
	}
	if c.QueueCapacity < 1 {
		return ErrInvalidQueueCapacity(c.QueueCapacity)
	}
	return nil
}

// poolSizeFromEnv returns the configured process-wide pool size,
// falling back to the built-in default
func poolSizeFromEnv() int {
	if v := os.Getenv(PoolSizeEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultPoolSize
}
