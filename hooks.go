package intervalcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// Computed, Invalidated and Reset run while the cache lock is held.
// Evicted may be called from a provider's own goroutine.
type Hooks interface {
	// A query missed and the sum over key was computed and stored.
	Computed(key Interval)

	// The provider dropped key to stay within its capacity.
	Evicted(key Interval)

	// A mutation at index removed `removed` resident intervals.
	Invalidated(index, removed int)

	// Reset dropped `removed` entries.
	Reset(removed int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Computed(Interval)    {}
func (NopHooks) Evicted(Interval)     {}
func (NopHooks) Invalidated(int, int) {}
func (NopHooks) Reset(int)            {}
