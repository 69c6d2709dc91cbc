package cache

import "github.com/bibliocommons/self-refreshing-cache/scheduler"

// Option configures optional cache behavior. Options are applied in
// order by New after the mandatory configuration is validated.
type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultValue configures a default value. When set, an initial
// load failure is absorbed: Get returns the default instead of an
// error and a one-time aggressive retry is scheduled.
func WithDefaultValue[K comparable, V any](value V) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultValue = &value
	}
}

// WithDefaultValueForInitialLoad configures a default value that is
// also used to seed every entry's first access, skipping the
// synchronous initial load entirely. The background refresh schedule
// still replaces the seed with loaded values.
func WithDefaultValueForInitialLoad[K comparable, V any](value V) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultValue = &value
		c.useDefaultForInitialLoad = true
	}
}

// WithScheduler injects the scheduler used for background refreshes.
// By default the process-wide shared scheduler is used. The cache does
// not take ownership of an injected scheduler's lifecycle.
func WithScheduler[K comparable, V any](s scheduler.Scheduler) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.scheduler = s
	}
}

// WithMetrics injects an observability backend; defaults to NoopMetrics
func WithMetrics[K comparable, V any](m Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.metrics = m
	}
}
