// Package fifo adapts the SIEVE and S3-FIFO caches of scalalang2/golang-fifo
// to provider.Provider.
//
// The library cannot enumerate its keys, so the adapter keeps an index of
// resident keys. The library's eviction callback runs synchronously inside
// Set, Remove and Purge, and removes keys from the index as they leave;
// capacity evictions are also reported to onEvict.
package fifo

import (
	"fmt"
	"sync"

	"github.com/scalalang2/golang-fifo/s3fifo"
	"github.com/scalalang2/golang-fifo/sieve"
	"github.com/scalalang2/golang-fifo/types"

	"github.com/unkn0wn-root/intervalcache/provider"
)

// Policy selects the replacement policy.
type Policy int

const (
	Sieve Policy = iota
	S3FIFO
)

func (p Policy) String() string {
	switch p {
	case Sieve:
		return "sieve"
	case S3FIFO:
		return "s3-fifo"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

type Provider[V any] struct {
	c       types.Cache[provider.Interval, V]
	onEvict provider.EvictFunc

	// mu guards index only; it is never held across a library call, since
	// the eviction callback takes it from inside the library's lock.
	mu    sync.Mutex
	index map[provider.Interval]struct{}
}

func New[V any](capacity int, policy Policy, onEvict provider.EvictFunc) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("fifo: capacity must be > 0 but %d was requested", capacity)
	}
	var c types.Cache[provider.Interval, V]
	switch policy {
	case Sieve:
		c = sieve.New[provider.Interval, V](capacity, 0)
	case S3FIFO:
		c = s3fifo.New[provider.Interval, V](capacity, 0)
	default:
		return nil, fmt.Errorf("fifo: unknown policy %d", int(policy))
	}
	p := &Provider[V]{
		c:       c,
		onEvict: onEvict,
		index:   make(map[provider.Interval]struct{}, capacity),
	}
	c.SetOnEvicted(p.left)
	return p, nil
}

func Factory(policy Policy) provider.Factory[int64] {
	return func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := New[int64](capacity, policy, onEvict)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// left is the library's eviction callback.
func (p *Provider[V]) left(key provider.Interval, _ V, reason types.EvictReason) {
	p.mu.Lock()
	delete(p.index, key)
	p.mu.Unlock()
	if reason == types.EvictReasonEvicted && p.onEvict != nil {
		p.onEvict(key)
	}
}

func (p *Provider[V]) Get(key provider.Interval) (V, bool) { return p.c.Get(key) }

func (p *Provider[V]) Put(key provider.Interval, value V) {
	p.c.Set(key, value)
	p.mu.Lock()
	p.index[key] = struct{}{}
	p.mu.Unlock()
}

func (p *Provider[V]) Remove(key provider.Interval) bool { return p.c.Remove(key) }

func (p *Provider[V]) Keys() []provider.Interval {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]provider.Interval, 0, len(p.index))
	for k := range p.index {
		keys = append(keys, k)
	}
	return keys
}

func (p *Provider[V]) Len() int { return p.c.Len() }

// Purge clears the index itself: S3-FIFO drops its entries without calling
// back.
func (p *Provider[V]) Purge() {
	p.c.Purge()
	p.mu.Lock()
	clear(p.index)
	p.mu.Unlock()
}

func (p *Provider[V]) Close() error {
	p.c.Close()
	return nil
}
