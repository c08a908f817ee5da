// Package clock adapts the CLOCK policy of Code-Hex/go-generics-cache to
// provider.Provider.
//
// The library cache is not safe for concurrent use and exposes no eviction
// notification; the adapter locks around it and ignores onEvict.
//
// The library's Keys walks the ring from its first slot and returns nothing
// once that slot has been emptied, so the adapter keeps its own index of the
// keys it stored. The index may hold keys the ring has since evicted; it is
// pruned when it grows past twice the capacity.
package clock

import (
	"fmt"
	"sync"

	"github.com/Code-Hex/go-generics-cache/policy/clock"

	"github.com/unkn0wn-root/intervalcache/provider"
)

type Provider[V any] struct {
	mu    sync.Mutex
	c     *clock.Cache[provider.Interval, V]
	n     int
	keys  map[provider.Interval]struct{}
	limit int
}

func New[V any](capacity int) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("clock: capacity must be > 0 but %d was requested", capacity)
	}
	return &Provider[V]{
		c:     clock.NewCache[provider.Interval, V](clock.WithCapacity(capacity)),
		n:     capacity,
		keys:  make(map[provider.Interval]struct{}, capacity),
		limit: 2 * capacity,
	}, nil
}

func Factory(capacity int, _ provider.EvictFunc) (provider.Provider[int64], error) {
	p, err := New[int64](capacity)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider[V]) Get(key provider.Interval) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c.Get(key)
}

func (p *Provider[V]) Put(key provider.Interval, value V) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.c.Set(key, value)
	p.keys[key] = struct{}{}
	if len(p.keys) > p.limit {
		p.prune()
	}
}

// Remove reports residency from the ring's size, which Delete shrinks only
// for a resident key.
func (p *Provider[V]) Remove(key provider.Interval) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.keys[key]; !ok {
		return false
	}
	delete(p.keys, key)
	before := p.c.Len()
	p.c.Delete(key)
	return p.c.Len() < before
}

// Keys returns the indexed keys. It may include keys already evicted.
func (p *Provider[V]) Keys() []provider.Interval {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]provider.Interval, 0, len(p.keys))
	for k := range p.keys {
		keys = append(keys, k)
	}
	return keys
}

func (p *Provider[V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c.Len()
}

// Purge swaps in a fresh ring; the library has no clear operation.
func (p *Provider[V]) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.c = clock.NewCache[provider.Interval, V](clock.WithCapacity(p.n))
	clear(p.keys)
}

// prune drops evicted keys from the index. The library has no lookup that
// leaves the reference bit alone, so surviving keys are touched once.
func (p *Provider[V]) prune() {
	for k := range p.keys {
		if _, ok := p.c.Get(k); !ok {
			delete(p.keys, k)
		}
	}
}
