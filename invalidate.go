package intervalcache

import (
	"github.com/unkn0wn-root/intervalcache/provider"
)

// Invalidate removes from store every resident interval that covers index
// and returns the removed keys.
//
// It scans a Keys snapshot rather than the live structure, so removal during
// the scan is safe. Cost is O(resident entries) per call.
func Invalidate[V any](store provider.Provider[V], index int) []Interval {
	var removed []Interval
	for _, k := range store.Keys() {
		if !k.Covers(index) {
			continue
		}
		if store.Remove(k) {
			removed = append(removed, k)
		}
	}
	return removed
}
