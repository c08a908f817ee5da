// Package ttlcache adapts jellydator/ttlcache/v3 to provider.Provider.
//
// Entries are bounded by count and, optionally, by age. Expiry only drops
// entries early; it never serves a stale sum, because mutations invalidate
// synchronously either way.
package ttlcache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/unkn0wn-root/intervalcache/provider"
)

type Config struct {
	TTL time.Duration // 0 => entries never expire
}

type Provider[V any] struct {
	c           *ttlcache.Cache[provider.Interval, V]
	unsubscribe func()
}

// New builds a cache. With a TTL it also starts the expiry loop, which
// Close stops.
func New[V any](capacity int, onEvict provider.EvictFunc, cfg Config) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ttlcache: capacity must be > 0 but %d was requested", capacity)
	}
	opts := []ttlcache.Option[provider.Interval, V]{
		ttlcache.WithCapacity[provider.Interval, V](uint64(capacity)),
	}
	if cfg.TTL > 0 {
		opts = append(opts, ttlcache.WithTTL[provider.Interval, V](cfg.TTL))
	}

	p := &Provider[V]{c: ttlcache.New[provider.Interval, V](opts...)}
	if onEvict != nil {
		p.unsubscribe = p.c.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[provider.Interval, V]) {
			switch reason {
			case ttlcache.EvictionReasonCapacityReached, ttlcache.EvictionReasonExpired:
				onEvict(item.Key())
			}
		})
	}
	if cfg.TTL > 0 {
		go p.c.Start()
	}
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

func (p *Provider[V]) Get(key provider.Interval) (V, bool) {
	item := p.c.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

func (p *Provider[V]) Put(key provider.Interval, value V) {
	p.c.Set(key, value, ttlcache.DefaultTTL)
}

func (p *Provider[V]) Remove(key provider.Interval) bool {
	if !p.c.Has(key) {
		return false
	}
	p.c.Delete(key)
	return true
}

func (p *Provider[V]) Keys() []provider.Interval { return p.c.Keys() }
func (p *Provider[V]) Len() int                  { return p.c.Len() }
func (p *Provider[V]) Purge()                    { p.c.DeleteAll() }

func (p *Provider[V]) Close() error {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.c.Stop()
	return nil
}
