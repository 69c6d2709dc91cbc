package cache

import "time"

// refreshPeriodProportion is the fraction of the refresh interval used
// as the upper bound for the randomized first-refresh delay
const refreshPeriodProportion = 0.5

const (
	defaultMinRefreshInterval          = time.Minute
	defaultFailedInitialLoadRetryDelay = 10 * time.Minute
)

// Config holds configuration for a self-refreshing cache
type Config struct {
	// Name is used for logging purposes to identify the cache (required)
	Name string `mapstructure:"name"`
	// RefreshInterval is the period between scheduled background
	// refreshes of each entry. Must be >= MinRefreshInterval.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	// MinRefreshInterval is the lower bound enforced on RefreshInterval
	// default: 1 minute
	MinRefreshInterval time.Duration `mapstructure:"min_refresh_interval"`
	// FailedInitialLoadRetryDelay bounds the one-time aggressive retry
	// scheduled when an initial load fails but a default value lets the
	// cache proceed
	// default: 10 minutes
	FailedInitialLoadRetryDelay time.Duration `mapstructure:"failed_initial_load_retry_delay"`
	// Capacity is a sizing hint for the entry table. It does not limit
	// the number of entries; the cache never evicts.
	Capacity int `mapstructure:"capacity"`
}

// DefaultConfig returns the default configuration for the cache.
// Name and RefreshInterval have no defaults and must be set explicitly.
func DefaultConfig() *Config {
	return &Config{
		MinRefreshInterval:          defaultMinRefreshInterval,
		FailedInitialLoadRetryDelay: defaultFailedInitialLoadRetryDelay,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrInvalidName(c.Name)
	}
	if c.RefreshInterval < c.MinRefreshInterval {
		return ErrInvalidRefreshInterval(c.RefreshInterval, c.MinRefreshInterval)
	}
	if c.FailedInitialLoadRetryDelay <= 0 {
		return ErrInvalidRetryDelay(c.FailedInitialLoadRetryDelay)
	}
	if c.Capacity < 0 {
		return ErrInvalidCapacity(c.Capacity)
	}
	return nil
}
