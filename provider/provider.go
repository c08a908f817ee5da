// Package provider defines the storage abstraction used by intervalcache.
//
// A Provider holds computed aggregates keyed by [Interval]. The cache calls
// it while holding its own lock, so implementations need not be safe for
// concurrent use unless they run background work of their own (eviction
// callbacks fired from library goroutines, for example).
//
// Coherence depends on Keys: it MUST return every resident key. It may return
// extra keys that are no longer resident; Remove on those is a no-op.
package provider

import "strconv"

// Interval is an inclusive index range [Left, Right] of a sequence.
type Interval struct {
	Left, Right int
}

// Covers reports whether index lies inside the interval.
func (iv Interval) Covers(index int) bool {
	return iv.Left <= index && index <= iv.Right
}

// Width returns the number of elements in the interval.
func (iv Interval) Width() int { return iv.Right - iv.Left + 1 }

func (iv Interval) String() string {
	return "[" + strconv.Itoa(iv.Left) + "," + strconv.Itoa(iv.Right) + "]"
}

// Provider is a bounded store of values keyed by Interval.
type Provider[V any] interface {
	// Get returns (value, true) on hit and (zero, false) on miss.
	// A hit may update the entry's recency/frequency state.
	Get(key Interval) (V, bool)

	// Put inserts or replaces the value. It may evict other entries to stay
	// within the provider's bound.
	Put(key Interval, value V)

	// Remove deletes key and reports whether it was resident.
	Remove(key Interval) bool

	// Keys returns a point-in-time copy of the resident keys.
	Keys() []Interval

	// Len returns the number of resident entries (best effort for
	// providers with asynchronous bookkeeping).
	Len() int

	// Purge drops every entry.
	Purge()
}

// Closer is implemented by providers that own background resources.
type Closer interface {
	Close() error
}

// EvictFunc is notified when a provider drops an entry to stay within its
// bound. Removals and purges are not reported. Providers that run eviction on
// their own goroutines call it from there.
type EvictFunc func(key Interval)

// Factory builds a Provider for capacity entries. onEvict may be nil.
// Providers whose library exposes no eviction notification ignore it.
type Factory[V any] func(capacity int, onEvict EvictFunc) (Provider[V], error)
