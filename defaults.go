package intervalcache

import (
	"github.com/unkn0wn-root/intervalcache/provider"
	"github.com/unkn0wn-root/intervalcache/recency"
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// RecencyProvider is the default Factory: a strict LRU [recency.Store]
// that never holds more than capacity entries and reports every eviction.
func RecencyProvider(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
	var evict func(Interval, int64)
	if onEvict != nil {
		evict = func(k Interval, _ int64) { onEvict(k) }
	}
	s, err := recency.New[Interval, int64](capacity, evict)
	if err != nil {
		return nil, err
	}
	return s, nil
}
