package intervalcache

import (
	"fmt"
	"sync"

	"github.com/unkn0wn-root/intervalcache/provider"
)

// Cache memoizes range sums over a sequence of E.
// It is safe for concurrent use; each call runs under one lock from lookup to
// invalidation. Constructed by [New].
type Cache[E Element] struct {
	mu       sync.Mutex
	store    provider.Provider[int64]
	capacity int
	closed   bool

	log   Logger
	hooks Hooks
	stats counters
}

func newCache[E Element](opts Options) (*Cache[E], error) {
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("%w: must be > 0 but %d was requested", ErrInvalidCapacity, opts.Capacity)
	}

	c := &Cache[E]{capacity: opts.Capacity}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	factory := opts.Provider
	if factory == nil {
		factory = RecencyProvider
	}
	store, err := factory(opts.Capacity, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("intervalcache: provider: %w", err)
	}
	c.store = store

	c.log.Info("interval cache created", Fields{"capacity": opts.Capacity})
	return c, nil
}

func (c *Cache[E]) onEvict(key Interval) {
	c.stats.evictions.Add(1)
	c.hooks.Evicted(key)
}

// Query returns the sum of seq[left..right] inclusive.
// A resident result is returned as is; otherwise the sum is computed in
// O(right-left+1), stored and returned. seq is never modified.
func (c *Cache[E]) Query(seq []E, left, right int) (int64, error) {
	if err := checkRange(left, right, len(seq)); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}

	key := Interval{Left: left, Right: right}
	if v, ok := c.store.Get(key); ok {
		c.stats.hits.Add(1)
		return v, nil
	}
	c.stats.misses.Add(1)

	v := sum(seq[left : right+1])
	c.store.Put(key, v)
	c.stats.computations.Add(1)
	c.hooks.Computed(key)
	c.log.Debug("computed interval", Fields{"key": key.String(), "sum": v})
	return v, nil
}

// Mutate writes seq[index] = value and, before returning, removes every
// cached interval that covers index.
func (c *Cache[E]) Mutate(seq []E, index int, value E) error {
	if err := checkIndex(index, len(seq)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	seq[index] = value
	c.stats.mutations.Add(1)

	removed := Invalidate(c.store, index)
	if n := len(removed); n > 0 {
		c.stats.invalidations.Add(uint64(n))
		c.hooks.Invalidated(index, n)
		c.log.Debug("invalidated intervals", Fields{"index": index, "removed": n})
	}
	return nil
}

// Reset drops every cached interval. The capacity is unchanged.
func (c *Cache[E]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	n := c.store.Len()
	c.store.Purge()
	c.stats.resets.Add(1)
	c.hooks.Reset(n)
	c.log.Debug("cache reset", Fields{"removed": n})
}

// Cached reports whether [left, right] is resident without touching its
// recency. It scans the resident keys and is meant for diagnostics.
func (c *Cache[E]) Cached(left, right int) bool {
	key := Interval{Left: left, Right: right}
	for _, k := range c.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns a snapshot of the resident intervals. The order is the
// provider's; the default provider lists them least recently used first.
func (c *Cache[E]) Keys() []Interval {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.store.Keys()
}

// Len returns the number of resident intervals.
func (c *Cache[E]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}
	return c.store.Len()
}

// Capacity returns the configured capacity.
func (c *Cache[E]) Capacity() int { return c.capacity }

// Stats returns a snapshot of the cache counters.
func (c *Cache[E]) Stats() Stats { return c.stats.snapshot() }

// Close releases provider resources. Later calls to Query and Mutate return
// ErrClosed. Close is safe to call multiple times.
func (c *Cache[E]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if cl, ok := c.store.(provider.Closer); ok {
		return cl.Close()
	}
	return nil
}

func sum[E Element](s []E) int64 {
	var total int64
	for _, v := range s {
		total += int64(v)
	}
	return total
}
