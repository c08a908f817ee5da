// Package intervalcache memoizes range-sum queries over a caller-owned,
// mutable sequence. Cached sums are never stale: every [Cache.Mutate] removes
// the resident intervals covering the written index before it returns.
//
// Components:
//   - Provider: bounded store of sums keyed by Interval. Defaults to a strict
//     LRU (package recency); alternatives live under provider/.
//   - Invalidate: scans a snapshot of the provider's keys and removes every
//     interval covering a mutated index.
//   - Logger / Hooks: pluggable observability (log/*, sloghooks, hooks/async).
//
// Usage:
//
//	seq := []int32{1, 2, 3, 4, 5}
//	c, _ := intervalcache.New[int32](intervalcache.Options{Capacity: 1000})
//	sum, _ := c.Query(seq, 1, 3)   // 9, computed and cached
//	_ = c.Mutate(seq, 2, 100)      // drops [1,3]
//	sum, _ = c.Query(seq, 1, 3)    // 106, recomputed
//
// A Cache serves one logical sequence. Writes that bypass Mutate are not
// seen by the cache.
package intervalcache
