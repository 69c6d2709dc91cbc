// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/bibliocommons/self-refreshing-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	loads   *prometheus.CounterVec
	loadErr *prometheus.CounterVec
	size    prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Gets served from an already-loaded entry",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Gets that performed the initial load",
			ConstLabels: constLabels,
		}),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "loads_total",
				Help:        "Load strategy invocations by kind",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
		loadErr: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "load_errors_total",
				Help:        "Failed load strategy invocations by kind",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.loads, a.loadErr, a.size)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Load increments the load counter with a kind label.
func (a *Adapter) Load(k cache.LoadKind) {
	a.loads.WithLabelValues(k.String()).Inc()
}

// LoadError increments the load error counter with a kind label.
func (a *Adapter) LoadError(k cache.LoadKind) {
	a.loadErr.WithLabelValues(k.String()).Inc()
}

// Size updates the resident entry gauge.
func (a *Adapter) Size(entries int) {
	a.size.Set(float64(entries))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
