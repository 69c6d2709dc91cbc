package scheduler

import (
	"fmt"
	"time"
)

// Predefined errors
var (
	// ErrSchedulerClosed is returned when scheduling on a shut-down scheduler
	ErrSchedulerClosed = fmt.Errorf("scheduler: scheduler is closed")
	// ErrNilTask is returned when a nil task is scheduled
	ErrNilTask = fmt.Errorf("scheduler: nil task")
)

// Error constructors

// ErrInvalidPoolSize returns an error for an invalid pool size
func ErrInvalidPoolSize(size int) error {
	return fmt.Errorf("scheduler: invalid pool size: %d (must be >= 1)", size)
}

// ErrInvalidQueueCapacity returns an error for an invalid queue capacity
func ErrInvalidQueueCapacity(capacity int) error {
	return fmt.Errorf("scheduler: invalid queue capacity: %d (must be >= 1)", capacity)
}

// ErrInvalidInterval returns an error for an invalid repeat interval
func ErrInvalidInterval(interval time.Duration) error {
	return fmt.Errorf("scheduler: invalid interval: %v (must be > 0)", interval)
}

// ErrInvalidDelay returns an error for a negative delay
func ErrInvalidDelay(delay time.Duration) error {
	return fmt.Errorf("scheduler: invalid delay: %v (must be >= 0)", delay)
}
