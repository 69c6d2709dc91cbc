package cache

import (
	"sync"
	"sync/atomic"

	"github.com/bibliocommons/self-refreshing-cache/logger"
	"go.uber.org/zap"
)

// snapshot is the unit of replacement for an entry's cached state.
// A load installs a complete snapshot in one atomic pointer swap, so
// readers never observe a half-written value. empty marks a load that
// succeeded but produced nothing, which is distinct from "never loaded"
// (a nil snapshot pointer).
type snapshot[V any] struct {
	value V
	empty bool
}

// entry holds the cached state for one key plus the logic to reload it.
// It is created on first lookup and lives for the lifetime of its cache.
type entry[K comparable, V any] struct {
	key      K
	name     string
	strategy LoadStrategy[K, V]
	logger   logger.Logger
	metrics  Metrics

	// mu serializes only the initial-load decision in Cache.Get.
	// Routine refreshes are deliberately not mutually excluded; the
	// last snapshot swap wins.
	mu sync.Mutex

	// current is nil until the first successful load or default seed
	current atomic.Pointer[snapshot[V]]
}

func newEntry[K comparable, V any](cacheName string, key K, strategy LoadStrategy[K, V], log logger.Logger, m Metrics) *entry[K, V] {
	return &entry[K, V]{
		key:      key,
		name:     taskName(cacheName, key),
		strategy: strategy,
		logger:   log,
		metrics:  m,
	}
}

// loaded reports whether the entry has ever completed a successful
// load or been seeded with a default
func (e *entry[K, V]) loaded() bool {
	return e.current.Load() != nil
}

// get returns the current value and whether any value is present.
// A never-loaded entry and a cached empty result both report false.
func (e *entry[K, V]) get() (V, bool) {
	s := e.current.Load()
	if s == nil || s.empty {
		var zero V
		return zero, false
	}
	return s.value, true
}

// seed installs a value without consulting the load strategy
func (e *entry[K, V]) seed(value V) {
	e.current.Store(&snapshot[V]{value: value})
}

// refresh invokes the load strategy and swaps in the result.
// On failure the previous snapshot is left untouched and the error is
// returned to the caller; suppression is the caller's decision.
func (e *entry[K, V]) refresh() error {
	value, ok, err := e.strategy.Load(e.key)
	if err != nil {
		return err
	}

	if ok {
		e.current.Store(&snapshot[V]{value: value})
	} else {
		e.current.Store(&snapshot[V]{empty: true})
	}
	return nil
}

// Name implements scheduler.Task
func (e *entry[K, V]) Name() string {
	return e.name
}

// Run implements scheduler.Task. Errors are swallowed after logging so
// a transient load failure never terminates the refresh schedule; the
// stale value stays visible until the next successful refresh.
func (e *entry[K, V]) Run() {
	e.logger.Debug("refreshing entry", zap.String("entry", e.name))
	e.metrics.Load(LoadScheduled)

	if err := e.refresh(); err != nil {
		e.metrics.LoadError(LoadScheduled)
		e.logger.Error("scheduled refresh failed, keeping previous value",
			zap.String("entry", e.name),
			zap.Error(err),
		)
	}
}
