package cache

import (
	"fmt"
	"time"
)

// Predefined errors
var (
	// ErrInvalidConfig is returned when the configuration is invalid
	ErrInvalidConfig = fmt.Errorf("cache: invalid config")
	// ErrNilStrategy is returned when no load strategy is provided
	ErrNilStrategy = fmt.Errorf("cache: nil load strategy")
)

// Error constructors

// ErrInitialLoad wraps a fatal initial load failure. It is returned by
// Get when the first load for a key fails and no default value is
// configured; the root cause is available via errors.Unwrap.
func ErrInitialLoad(name string, err error) error {
	return fmt.Errorf("cache: %s: could not initialize value: %w", name, err)
}

// ErrRefresh wraps a forced refresh failure
func ErrRefresh(name string, err error) error {
	return fmt.Errorf("cache: %s: refresh failed: %w", name, err)
}

// ErrInvalidName returns an error for an invalid cache name
func ErrInvalidName(name string) error {
	return fmt.Errorf("cache: invalid name: %q (must be non-empty)", name)
}

// ErrInvalidRefreshInterval returns an error for a refresh interval
// below the configured minimum
func ErrInvalidRefreshInterval(interval, minimum time.Duration) error {
	return fmt.Errorf("cache: invalid refresh interval: %v (must be >= %v)", interval, minimum)
}

// ErrInvalidRetryDelay returns an error for an invalid failed-initial-load retry delay
func ErrInvalidRetryDelay(delay time.Duration) error {
	return fmt.Errorf("cache: invalid failed initial load retry delay: %v (must be > 0)", delay)
}

// ErrInvalidCapacity returns an error for a negative capacity hint
func ErrInvalidCapacity(capacity int) error {
	return fmt.Errorf("cache: invalid capacity: %d (must be >= 0)", capacity)
}
