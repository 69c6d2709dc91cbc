package cache

// LoadKind labels which path invoked the load strategy
type LoadKind int

const (
	// LoadInitial — the synchronous first load on the Get path
	LoadInitial LoadKind = iota
	// LoadScheduled — a periodic or aggressive-retry background refresh
	LoadScheduled
	// LoadForced — an on-demand GetForceRefresh
	LoadForced
)

// String returns a stable label value for the load kind
func (k LoadKind) String() string {
	switch k {
	case LoadScheduled:
		return "scheduled"
	case LoadForced:
		return "forced"
	default:
		return "initial"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Hit records a Get that found an already-loaded entry
	Hit()
	// Miss records a Get that had to perform the initial load
	Miss()
	// Load records a load strategy invocation
	Load(kind LoadKind)
	// LoadError records a failed load strategy invocation
	LoadError(kind LoadKind)
	// Size reports the number of resident entries
	Size(entries int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when no
// observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()               {}
func (NoopMetrics) Miss()              {}
func (NoopMetrics) Load(LoadKind)      {}
func (NoopMetrics) LoadError(LoadKind) {}
func (NoopMetrics) Size(entries int)   {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
