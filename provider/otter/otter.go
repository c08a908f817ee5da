// Package otter adapts maypok86/otter/v2 to provider.Provider.
package otter

import (
	"fmt"

	"github.com/maypok86/otter/v2"

	"github.com/unkn0wn-root/intervalcache/provider"
)

type Provider[V any] struct {
	c *otter.Cache[provider.Interval, V]
}

// New builds a cache bounded to capacity entries. Evictions are reported
// from otter's maintenance path, which may run on another goroutine.
func New[V any](capacity int, onEvict provider.EvictFunc) (*Provider[V], error) {
	// MaximumSize 0 means unbounded to otter.
	if capacity <= 0 {
		return nil, fmt.Errorf("otter: capacity must be > 0 but %d was requested", capacity)
	}
	opts := &otter.Options[provider.Interval, V]{MaximumSize: capacity}
	if onEvict != nil {
		opts.OnDeletion = func(e otter.DeletionEvent[provider.Interval, V]) {
			if e.WasEvicted() {
				onEvict(e.Key)
			}
		}
	}
	c, err := otter.New(opts)
	if err != nil {
		return nil, fmt.Errorf("otter: %w", err)
	}
	return &Provider[V]{c: c}, nil
}

func Factory(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
	p, err := New[int64](capacity, onEvict)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider[V]) Get(key provider.Interval) (V, bool) { return p.c.GetIfPresent(key) }
func (p *Provider[V]) Put(key provider.Interval, value V)  { p.c.Set(key, value) }

func (p *Provider[V]) Remove(key provider.Interval) bool {
	_, ok := p.c.Invalidate(key)
	return ok
}

func (p *Provider[V]) Keys() []provider.Interval {
	keys := make([]provider.Interval, 0, p.c.EstimatedSize())
	for k := range p.c.All() {
		keys = append(keys, k)
	}
	return keys
}

// Len is otter's estimate.
func (p *Provider[V]) Len() int { return p.c.EstimatedSize() }
func (p *Provider[V]) Purge()   { p.c.InvalidateAll() }
