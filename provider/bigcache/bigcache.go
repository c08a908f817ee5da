// Package bigcache stores interval sums in allegro/bigcache/v3.
//
// Bigcache is bounded by bytes rather than entries: capacity only sizes the
// shards, and HardMaxCacheSizeMB caps memory. Entries leave on expiry
// (LifeWindow) or when a shard runs out of space; both are reported as
// evictions.
package bigcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/codec"
	"github.com/unkn0wn-root/intervalcache/internal/bytestore"
	"github.com/unkn0wn-root/intervalcache/internal/util"
	"github.com/unkn0wn-root/intervalcache/provider"
)

type Config[V any] struct {
	Shards             int           // power of two; 0 => 16
	LifeWindow         time.Duration // 0 => 24h
	CleanWindow        time.Duration // 0 => no background cleanup
	MaxEntrySize       int           // initial allocation hint in bytes; 0 => 64
	HardMaxCacheSizeMB int           // 0 = unlimited

	Codec  codec.Codec[V]       // nil => Msgpack
	Logger intervalcache.Logger // nil => NopLogger
}

type Provider[V any] struct {
	*bytestore.Store[V]
	c *bc.BigCache
}

type backend struct {
	c *bc.BigCache
}

func New[V any](capacity int, onEvict provider.EvictFunc, cfg Config[V]) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("bigcache: capacity must be > 0 but %d was requested", capacity)
	}
	lw := cfg.LifeWindow
	if lw <= 0 {
		lw = 24 * time.Hour
	}
	conf := bc.DefaultConfig(lw)
	conf.Shards = 16
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	conf.CleanWindow = cfg.CleanWindow
	conf.MaxEntriesInWindow = capacity
	conf.MaxEntrySize = 64
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	conf.Verbose = false
	if onEvict != nil {
		conf.OnRemoveWithReason = func(key string, _ []byte, reason bc.RemoveReason) {
			if reason == bc.Deleted {
				return
			}
			if k, err := util.ParseStringKey(key); err == nil {
				onEvict(k)
			}
		}
	}

	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, fmt.Errorf("bigcache: %w", err)
	}
	return &Provider[V]{
		Store: bytestore.New[V](backend{c: c}, cfg.Codec, cfg.Logger),
		c:     c,
	}, nil
}

func Factory(cfg Config[int64]) provider.Factory[int64] {
	return func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := New[int64](capacity, onEvict, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func (p *Provider[V]) Close() error { return p.c.Close() }

func (b backend) Get(key provider.Interval) ([]byte, bool, error) {
	v, err := b.c.Get(util.StringKey(key))
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b backend) Set(key provider.Interval, entry []byte) error {
	return b.c.Set(util.StringKey(key), entry)
}

func (b backend) Del(key provider.Interval) bool {
	return b.c.Delete(util.StringKey(key)) == nil
}

// Keys skips entries whose key is not an interval.
func (b backend) Keys() []provider.Interval {
	keys := make([]provider.Interval, 0, b.c.Len())
	it := b.c.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue
		}
		if k, err := util.ParseStringKey(info.Key()); err == nil {
			keys = append(keys, k)
		}
	}
	return keys
}

func (b backend) Len() int { return b.c.Len() }
func (b backend) Reset()   { _ = b.c.Reset() }
