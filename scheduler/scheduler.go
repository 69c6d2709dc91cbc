// Package scheduler provides deferred and periodic task execution on a
// shared, bounded worker pool.
//
// The scheduler package follows go-kit conventions:
// - Interface-driven design for testability
// - Uses logger.Logger interface for unified logging
// - Uses routine package for safe goroutine execution
// - Configuration with validation and defaults
// - Structured error handling
//
// Timing is driven by a robfig/cron timer loop with custom schedules;
// due tasks are queued and executed by a fixed number of workers so
// that slow tasks cannot spawn unbounded goroutines.
package scheduler

import (
	"time"

	"github.com/bibliocommons/self-refreshing-cache/logger"
)

// Task is a unit of work that can be scheduled.
// Run must not be assumed to execute on any particular goroutine,
// and may run concurrently with other scheduled runs of the same task.
type Task interface {
	// Name returns an identifier for this task, used for logging
	Name() string
	// Run executes the task
	Run()
}

// Scheduler executes tasks after a delay, either once or repeatedly.
// Implementations share one worker pool across all scheduled tasks.
type Scheduler interface {
	// ScheduleOnce runs the task a single time after the given delay
	ScheduleOnce(task Task, delay time.Duration) error

	// ScheduleRepeating runs the task after initialDelay, then every
	// interval thereafter. Intervals are measured between activations,
	// not between completions; a slow task may overlap its next run.
	ScheduleRepeating(task Task, initialDelay, interval time.Duration) error

	// Shutdown stops the timer loop, rejects new registrations, drops
	// queued work that has not started, and waits for in-flight tasks.
	// It can be called multiple times safely.
	Shutdown()
}

// New creates a new scheduler with the given logger and configuration.
// The returned Scheduler must have Start called on the concrete *Pool
// via NewStarted, or be obtained from Default, before tasks run.
func New(log logger.Logger, cfg *Config) (*Pool, error) {
	return newPool(log, cfg)
}

// NewStarted creates a scheduler and starts its timer loop and workers
func NewStarted(log logger.Logger, cfg *Config) (*Pool, error) {
	p, err := newPool(log, cfg)
	if err != nil {
		return nil, err
	}
	p.Start()
	return p, nil
}
