// Package theine adapts Yiling-J/theine-go (W-TinyLFU) to provider.Provider.
//
// Theine applies its policy on a maintenance goroutine: Len may briefly
// exceed the capacity and evictions are reported from that goroutine.
package theine

import (
	"fmt"

	"github.com/Yiling-J/theine-go"

	"github.com/unkn0wn-root/intervalcache/provider"
)

type Provider[V any] struct {
	c *theine.Cache[provider.Interval, V]
}

func New[V any](capacity int, onEvict provider.EvictFunc) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("theine: capacity must be > 0 but %d was requested", capacity)
	}
	b := theine.NewBuilder[provider.Interval, V](int64(capacity))
	if onEvict != nil {
		b = b.RemovalListener(func(key provider.Interval, _ V, reason theine.RemoveReason) {
			if reason == theine.EVICTED {
				onEvict(key)
			}
		})
	}
	c, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("theine: %w", err)
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

func (p *Provider[V]) Get(key provider.Interval) (V, bool) { return p.c.Get(key) }

// Put stores value with unit cost, so capacity counts entries.
func (p *Provider[V]) Put(key provider.Interval, value V) { p.c.Set(key, value, 1) }

// Remove checks residency with Get: theine has no lookup that skips the
// frequency sketch, and its size changes on the maintenance goroutine, so
// comparing Len around Delete would race with evictions.
func (p *Provider[V]) Remove(key provider.Interval) bool {
	if _, ok := p.c.Get(key); !ok {
		return false
	}
	p.c.Delete(key)
	return true
}

func (p *Provider[V]) Keys() []provider.Interval {
	keys := make([]provider.Interval, 0, p.c.Len())
	p.c.Range(func(k provider.Interval, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (p *Provider[V]) Len() int { return p.c.Len() }

func (p *Provider[V]) Purge() {
	for _, k := range p.Keys() {
		p.c.Delete(k)
	}
}

// Close stops theine's maintenance goroutine.
func (p *Provider[V]) Close() error {
	p.c.Close()
	return nil
}
