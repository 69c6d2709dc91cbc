// Package cache provides a read-through, self-refreshing in-memory cache.
//
// The cache package follows go-kit conventions:
// - Interface-driven design for testability
// - Uses logger.Logger interface for unified logging
// - Uses the scheduler package for background refresh execution
// - Configuration with validation and defaults
// - Structured error handling
//
// A value is loaded synchronously through the LoadStrategy on first
// access of its key, then kept fresh by periodic background refreshes.
// First refreshes are staggered with a random delay so that many keys
// seeded at the same moment do not reload in one spike. Staleness of up
// to one refresh interval plus the stagger is an accepted property.
//
// WARNING: an error during a background refresh delays the next value
// update until the following interval; no freshness guarantee is made.
package cache

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bibliocommons/self-refreshing-cache/logger"
	"github.com/bibliocommons/self-refreshing-cache/scheduler"
	"go.uber.org/zap"
)

// Cache is a self-refreshing cache over keys of type K and values of
// type V. All methods are safe for concurrent use.
//
// For reference-typed values (slice, map, pointer), Get returns the
// cached reference, not a deep copy. Callers MUST treat returned
// values as read-only; a background refresh replaces the whole value
// rather than mutating it in place.
type Cache[K comparable, V any] struct {
	logger   logger.Logger
	strategy LoadStrategy[K, V]

	name                        string
	refreshInterval             time.Duration
	maxInitialDelay             time.Duration
	failedInitialLoadRetryDelay time.Duration

	scheduler scheduler.Scheduler
	metrics   Metrics

	defaultValue             *V
	useDefaultForInitialLoad bool

	// mu guards table mutation only; it is never held across a load
	mu    sync.RWMutex
	table map[K]*entry[K, V]
}

// New creates a new self-refreshing cache.
// It returns an error if the configuration is invalid or no load
// strategy is provided. Entries are loaded lazily; there is no Start.
func New[K comparable, V any](
	log logger.Logger,
	cfg *Config,
	strategy LoadStrategy[K, V],
	opts ...Option[K, V],
) (*Cache[K, V], error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	defaultCfg := DefaultConfig()
	if cfg.MinRefreshInterval == 0 {
		cfg.MinRefreshInterval = defaultCfg.MinRefreshInterval
	}
	if cfg.FailedInitialLoadRetryDelay == 0 {
		cfg.FailedInitialLoadRetryDelay = defaultCfg.FailedInitialLoadRetryDelay
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if strategy == nil {
		return nil, ErrNilStrategy
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &Cache[K, V]{
		logger:                      log,
		strategy:                    strategy,
		name:                        cfg.Name,
		refreshInterval:             cfg.RefreshInterval,
		maxInitialDelay:             time.Duration(float64(cfg.RefreshInterval) * refreshPeriodProportion),
		failedInitialLoadRetryDelay: cfg.FailedInitialLoadRetryDelay,
		metrics:                     NoopMetrics{},
		table:                       make(map[K]*entry[K, V], cfg.Capacity),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.scheduler == nil {
		c.scheduler = scheduler.Default()
	}

	log.Info("cache created",
		zap.String("cache", c.name),
		zap.Duration("refresh_interval", c.refreshInterval),
		zap.Duration("max_initial_delay", c.maxInitialDelay),
		zap.Bool("has_default", c.defaultValue != nil),
	)

	return c, nil
}

// Get returns the value associated with key, loading it synchronously
// on first access and registering it for periodic background refresh.
//
// Concurrent first accesses of the same key are serialized so that the
// load strategy runs at most once; later calls read the cached value
// without touching the strategy. A cached empty result returns the
// zero value and no error. If the first load fails and no default
// value is configured, the failure is returned wrapped and the next
// Get for the key retries the load from scratch.
func (c *Cache[K, V]) Get(key K) (V, error) {
	e := c.lookup(key)

	if e == nil {
		c.mu.Lock()
		// re-check: another caller may have created the entry while we
		// were acquiring the write lock
		if _, ok := c.table[key]; !ok {
			c.logger.Debug("creating entry", zap.String("cache", c.name), zap.Any("key", key))
			c.table[key] = newEntry(c.name, key, c.strategy, c.logger, c.metrics)
			c.metrics.Size(len(c.table))
		}
		c.mu.Unlock()
	}

	// re-fetch so a creation race always resolves to the single winner
	e = c.lookup(key)

	e.mu.Lock()
	if e.loaded() {
		e.mu.Unlock()
		c.metrics.Hit()
	} else {
		c.metrics.Miss()
		if err := c.initialize(e); err != nil {
			e.mu.Unlock()
			var zero V
			return zero, err
		}
		e.mu.Unlock()
	}

	value, _ := e.get()
	return value, nil
}

// GetForceRefresh synchronously reloads the value for key, bypassing
// the refresh schedule's cadence, and returns the result. Unlike
// scheduled refreshes a forced refresh propagates load failures to the
// caller. An unknown key falls through to the normal Get path.
func (c *Cache[K, V]) GetForceRefresh(key K) (V, error) {
	e := c.lookup(key)
	if e == nil {
		return c.Get(key)
	}

	c.metrics.Load(LoadForced)
	if err := e.refresh(); err != nil {
		c.metrics.LoadError(LoadForced)
		var zero V
		return zero, ErrRefresh(e.name, err)
	}

	value, _ := e.get()
	return value, nil
}

// Len returns the number of resident entries
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.table)
}

// MaxInitialDelay returns the upper bound of the randomized delay
// applied to an entry's first scheduled refresh
func (c *Cache[K, V]) MaxInitialDelay() time.Duration {
	return c.maxInitialDelay
}

// lookup fetches the entry for key under the read lock
func (c *Cache[K, V]) lookup(key K) *entry[K, V] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table[key]
}

// initialize performs the first-access population of an entry and
// registers its refresh schedule. The caller holds e.mu.
func (c *Cache[K, V]) initialize(e *entry[K, V]) error {
	c.logger.Debug("setting first time value", zap.String("entry", e.name))

	if c.useDefaultForInitialLoad && c.defaultValue != nil {
		e.seed(*c.defaultValue)
	} else {
		c.metrics.Load(LoadInitial)
		if err := e.refresh(); err != nil {
			c.metrics.LoadError(LoadInitial)
			if err := c.handleInitialFailure(e, err); err != nil {
				return err
			}
		}
	}

	// register the periodic refresh whether the first value came from
	// the strategy or the default
	delay := c.randomDelay(c.maxInitialDelay)
	if err := c.scheduler.ScheduleRepeating(e, delay, c.refreshInterval); err != nil {
		c.logger.Warn("could not register periodic refresh",
			zap.String("entry", e.name),
			zap.Error(err),
		)
	}

	return nil
}

// handleInitialFailure applies the policy for a failed first load.
// With a default value the failure is absorbed: the default is
// installed and a one-time aggressive retry is scheduled, which races
// the periodic schedule; the last write wins. Without a default the
// failure is fatal for this call and no schedule is registered.
func (c *Cache[K, V]) handleInitialFailure(e *entry[K, V], cause error) error {
	c.logger.Error("initial load failed",
		zap.String("entry", e.name),
		zap.Error(cause),
	)

	if c.defaultValue == nil {
		return ErrInitialLoad(e.name, cause)
	}

	e.seed(*c.defaultValue)

	retryDelay := c.randomDelay(c.failedInitialLoadRetryDelay)
	if err := c.scheduler.ScheduleOnce(e, retryDelay); err != nil {
		c.logger.Warn("could not schedule aggressive retry",
			zap.String("entry", e.name),
			zap.Error(err),
		)
	}
	return nil
}

// randomDelay draws a delay uniformly from [0, bound)
func (c *Cache[K, V]) randomDelay(bound time.Duration) time.Duration {
	if bound <= 0 {
		return 0
	}
	return rand.N(bound)
}

// taskName builds the scheduler task identifier for a key
func taskName[K comparable](cacheName string, key K) string {
	return fmt.Sprintf("%s:%v", cacheName, key)
}
