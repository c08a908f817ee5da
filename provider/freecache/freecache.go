// Package freecache stores interval sums in coocood/freecache.
//
// Freecache is bounded by bytes; capacity times EntrySize sizes it. It has
// no eviction notification, so onEvict is ignored.
package freecache

import (
	"errors"
	"fmt"

	"github.com/coocood/freecache"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/codec"
	"github.com/unkn0wn-root/intervalcache/internal/bytestore"
	"github.com/unkn0wn-root/intervalcache/internal/wire"
	"github.com/unkn0wn-root/intervalcache/provider"
)

// minBytes is freecache's practical floor (it splits memory into 256
// segments).
const minBytes = 512 * 1024

type Config[V any] struct {
	EntrySize int // bytes per entry incl. overhead; 0 => 96

	Codec  codec.Codec[V]       // nil => Msgpack
	Logger intervalcache.Logger // nil => NopLogger
}

type Provider[V any] struct {
	*bytestore.Store[V]
	c *freecache.Cache
}

type backend struct {
	c *freecache.Cache
}

func New[V any](capacity int, cfg Config[V]) (*Provider[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("freecache: capacity must be > 0 but %d was requested", capacity)
	}
	entry := cfg.EntrySize
	if entry <= 0 {
		entry = 96
	}
	c := freecache.NewCache(max(capacity*entry, minBytes))
	return &Provider[V]{
		Store: bytestore.New[V](backend{c: c}, cfg.Codec, cfg.Logger),
		c:     c,
	}, nil
}

func Factory(cfg Config[int64]) provider.Factory[int64] {
	return func(capacity int, _ provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := New[int64](capacity, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func key(k provider.Interval) []byte {
	return wire.AppendKey(make([]byte, 0, wire.KeySize), k)
}

func (b backend) Get(k provider.Interval) ([]byte, bool, error) {
	v, err := b.c.Get(key(k))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b backend) Set(k provider.Interval, entry []byte) error {
	return b.c.Set(key(k), entry, 0)
}

func (b backend) Del(k provider.Interval) bool { return b.c.Del(key(k)) }

// Keys skips entries whose key is not an encoded interval.
func (b backend) Keys() []provider.Interval {
	keys := make([]provider.Interval, 0, b.c.EntryCount())
	it := b.c.NewIterator()
	for e := it.Next(); e != nil; e = it.Next() {
		if k, err := wire.DecodeKey(e.Key); err == nil {
			keys = append(keys, k)
		}
	}
	return keys
}

func (b backend) Len() int { return int(b.c.EntryCount()) }
func (b backend) Reset()   { b.c.Clear() }
