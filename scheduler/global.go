package scheduler

import (
	"sync"

	"github.com/bibliocommons/self-refreshing-cache/logger"
)

var (
	defaultScheduler Scheduler
	defaultMu        sync.RWMutex
)

// Default returns the process-wide shared scheduler, constructing and
// starting it on first use. All caches in a process share its worker
// pool unless a scheduler is injected explicitly.
// This function is concurrency-safe.
func Default() Scheduler {
	defaultMu.RLock()
	if defaultScheduler != nil {
		defer defaultMu.RUnlock()
		return defaultScheduler
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultScheduler == nil {
		// DefaultConfig cannot fail validation
		p, _ := NewStarted(logger.Default(), DefaultConfig())
		defaultScheduler = p
	}
	return defaultScheduler
}

// SetDefault replaces the process-wide shared scheduler.
// The caller owns the lifecycle of the previous scheduler, if any.
// This function is concurrency-safe.
func SetDefault(s Scheduler) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultScheduler = s
}

// Shutdown stops the process-wide shared scheduler if one was built
func Shutdown() {
	defaultMu.Lock()
	s := defaultScheduler
	defaultScheduler = nil
	defaultMu.Unlock()

	if s != nil {
		s.Shutdown()
	}
}
