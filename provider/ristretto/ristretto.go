// Package ristretto adapts dgraph-io/ristretto to provider.Provider.
//
// Intervals are packed into uint64 keys, which ristretto uses as their own
// hash, so the Item a callback receives maps back to its interval. Ristretto
// cannot enumerate keys; the adapter keeps a key index that the OnEvict and
// OnReject callbacks maintain. Put waits for ristretto to apply the write so
// the index is exact when Put returns.
package ristretto

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/intervalcache/internal/util"
	"github.com/unkn0wn-root/intervalcache/provider"
)

type Provider[V any] struct {
	c       *rc.Cache
	onEvict provider.EvictFunc

	mu      sync.Mutex
	index   map[uint64]struct{}
	purging atomic.Bool
}

type Config struct {
	NumCounters int64 // 0 => 10 x capacity
	BufferItems int64 // 0 => 64
	Metrics     bool
}

func New[V any](capacity int, onEvict provider.EvictFunc, cfg Config) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = int64(capacity) * 10
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}

	p := &Provider[V]{onEvict: onEvict, index: make(map[uint64]struct{}, capacity)}
	c, err := rc.NewCache(&rc.Config{
		NumCounters:        cfg.NumCounters,
		MaxCost:            int64(capacity),
		BufferItems:        cfg.BufferItems,
		Metrics:            cfg.Metrics,
		IgnoreInternalCost: true,
		OnEvict:            p.evicted,
		OnReject:           p.rejected,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	p.c = c
	return p, nil
}

func Factory(cfg Config) provider.Factory[int64] {
	return func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := New[int64](capacity, onEvict, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func (p *Provider[V]) evicted(item *rc.Item) {
	p.forget(item.Key)
	if p.onEvict != nil && !p.purging.Load() {
		p.onEvict(util.Unpack(item.Key))
	}
}

func (p *Provider[V]) rejected(item *rc.Item) { p.forget(item.Key) }

func (p *Provider[V]) forget(k uint64) {
	p.mu.Lock()
	delete(p.index, k)
	p.mu.Unlock()
}

func (p *Provider[V]) Get(key provider.Interval) (V, bool) {
	var zero V
	if !util.Packable(key) {
		return zero, false
	}
	k := util.Pack(key)
	raw, ok := p.c.Get(k)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		// self-heal: drop unexpected entry shape
		p.Remove(key)
		return zero, false
	}
	return v, true
}

// Put is a no-op for intervals whose bounds do not fit in 32 bits.
func (p *Provider[V]) Put(key provider.Interval, value V) {
	if !util.Packable(key) {
		return
	}
	k := util.Pack(key)

	p.mu.Lock()
	p.index[k] = struct{}{}
	p.mu.Unlock()

	if !p.c.Set(k, value, 1) {
		// dropped under contention
		p.forget(k)
		return
	}
	p.c.Wait()
}

func (p *Provider[V]) Remove(key provider.Interval) bool {
	if !util.Packable(key) {
		return false
	}
	k := util.Pack(key)

	p.mu.Lock()
	_, resident := p.index[k]
	delete(p.index, k)
	p.mu.Unlock()

	p.c.Del(k)
	return resident
}

func (p *Provider[V]) Keys() []provider.Interval {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]provider.Interval, 0, len(p.index))
	for k := range p.index {
		keys = append(keys, util.Unpack(k))
	}
	return keys
}

func (p *Provider[V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.index)
}

// Purge clears the cache. Ristretto reports cleared items through OnEvict;
// those are not capacity evictions and are not forwarded.
func (p *Provider[V]) Purge() {
	p.purging.Store(true)
	p.c.Clear()
	p.purging.Store(false)

	p.mu.Lock()
	clear(p.index)
	p.mu.Unlock()
}

// Close also clears the cache, so it mutes eviction reports like Purge.
func (p *Provider[V]) Close() error {
	p.c.Wait()
	p.purging.Store(true)
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters; nil unless Config.Metrics was set.
func (p *Provider[V]) Metrics() *rc.Metrics { return p.c.Metrics }
