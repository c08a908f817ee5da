// Package freelru adapts elastic/go-freelru to provider.Provider.
//
// Intervals are hashed with xxh3 over their 16-byte wire encoding.
package freelru

import (
	"fmt"
	"math"

	lru "github.com/elastic/go-freelru"
	"github.com/zeebo/xxh3"

	"github.com/unkn0wn-root/intervalcache/internal/wire"
	"github.com/unkn0wn-root/intervalcache/provider"
)

// Config picks the freelru variant.
type Config struct {
	// Sharded spreads entries over per-CPU shards. Each shard is its own LRU,
	// so eviction order is only approximately global.
	Sharded bool
}

// lruCache is the method set SyncedLRU and ShardedLRU share.
type lruCache[V any] interface {
	Add(key provider.Interval, value V) (evicted bool)
	Get(key provider.Interval) (V, bool)
	Remove(key provider.Interval) (removed bool)
	Keys() []provider.Interval
	Len() int
	Purge()
	SetOnEvict(onEvict lru.OnEvictCallback[provider.Interval, V])
}

type Provider[V any] struct {
	c       lruCache[V]
	onEvict provider.EvictFunc
	muted   bool
}

func hash(key provider.Interval) uint32 {
	var b [wire.KeySize]byte
	return uint32(xxh3.Hash(wire.AppendKey(b[:0], key)))
}

// New builds a provider bounded to capacity entries.
func New[V any](capacity int, onEvict provider.EvictFunc, cfg Config) (*Provider[V], error) {
	if capacity <= 0 || uint64(capacity) > math.MaxUint32 {
		return nil, fmt.Errorf("freelru: capacity %d out of range", capacity)
	}

	var (
		c   lruCache[V]
		err error
	)
	if cfg.Sharded {
		c, err = lru.NewSharded[provider.Interval, V](uint32(capacity), hash)
	} else {
		c, err = lru.NewSynced[provider.Interval, V](uint32(capacity), hash)
	}
	if err != nil {
		return nil, fmt.Errorf("freelru: %w", err)
	}

	p := &Provider[V]{c: c, onEvict: onEvict}
	c.SetOnEvict(p.evicted)
	return p, nil
}

// Factory returns a provider.Factory for cfg.
func Factory(cfg Config) provider.Factory[int64] {
	return func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := New[int64](capacity, onEvict, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func (p *Provider[V]) evicted(key provider.Interval, _ V) {
	if p.muted || p.onEvict == nil {
		return
	}
	p.onEvict(key)
}

func (p *Provider[V]) Get(key provider.Interval) (V, bool) { return p.c.Get(key) }
func (p *Provider[V]) Put(key provider.Interval, value V)  { p.c.Add(key, value) }

func (p *Provider[V]) Remove(key provider.Interval) bool {
	p.muted = true
	defer func() { p.muted = false }()
	return p.c.Remove(key)
}

func (p *Provider[V]) Keys() []provider.Interval { return p.c.Keys() }
func (p *Provider[V]) Len() int                  { return p.c.Len() }

func (p *Provider[V]) Purge() {
	p.muted = true
	defer func() { p.muted = false }()
	p.c.Purge()
}
