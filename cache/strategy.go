package cache

// LoadStrategy produces the value associated with a key.
//
// The ok result distinguishes a present value (true) from a load that
// succeeded but found nothing (false); the latter is cached as an
// empty result and is not an error. A non-nil error means the load
// failed outright and the previous cached state, if any, is kept.
type LoadStrategy[K comparable, V any] interface {
	Load(key K) (value V, ok bool, err error)
}

// LoadFunc adapts a plain function to the LoadStrategy interface
type LoadFunc[K comparable, V any] func(key K) (V, bool, error)

// Load implements LoadStrategy
func (f LoadFunc[K, V]) Load(key K) (V, bool, error) {
	return f(key)
}
