package intervalcache

import "sync/atomic"

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits          uint64 // queries answered from the provider
	Misses        uint64 // queries that had to compute
	Computations  uint64 // sums computed and stored
	Evictions     uint64 // entries dropped for capacity (when the provider reports them)
	Invalidations uint64 // entries removed by mutations
	Mutations     uint64
	Resets        uint64
}

// HitRate returns hits as a fraction of all queries, or 0 before any query.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters are atomic because providers may report evictions from their own
// goroutines.
type counters struct {
	hits, misses, computations atomic.Uint64
	evictions, invalidations   atomic.Uint64
	mutations, resets          atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Computations:  c.computations.Load(),
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
		Mutations:     c.mutations.Load(),
		Resets:        c.resets.Load(),
	}
}
