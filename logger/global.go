package logger

import "sync"

var (
	defaultLogger Logger
	defaultMu     sync.RWMutex
)

// Default returns the process-wide default logger, building one from
// DefaultConfig on first use. If the build fails it falls back to Nop.
// This function is concurrency-safe.
func Default() Logger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defer defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		log, err := New(DefaultConfig())
		if err != nil {
			log = Nop()
		}
		defaultLogger = log
	}
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
// This function is concurrency-safe.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
