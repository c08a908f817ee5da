// Package golanglru adapts hashicorp/golang-lru caches to provider.Provider.
//
// Three policies are offered: plain LRU (evictions reported), 2Q and ARC.
// The library caches lock internally; the adapters add no locking.
package golanglru

import (
	"errors"
	"fmt"

	arc "github.com/hashicorp/golang-lru/arc/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/unkn0wn-root/intervalcache/provider"
)

// Policy selects the replacement policy.
type Policy int

const (
	LRU Policy = iota
	TwoQueue
	ARC
)

func (p Policy) String() string {
	switch p {
	case LRU:
		return "lru"
	case TwoQueue:
		return "2q"
	case ARC:
		return "arc"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

var ErrUnknownPolicy = errors.New("golanglru: unknown policy")

// Factory returns a provider.Factory for policy.
func Factory(policy Policy) provider.Factory[int64] {
	return func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		switch policy {
		case LRU:
			return NewLRU[int64](capacity, onEvict)
		case TwoQueue:
			return New2Q[int64](capacity)
		case ARC:
			return NewARC[int64](capacity)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
		}
	}
}

// LRUProvider wraps lru.Cache. The library fires its callback on Remove
// and Purge as well, so those calls mute it.
type LRUProvider[V any] struct {
	c       *lru.Cache[provider.Interval, V]
	onEvict provider.EvictFunc
	muted   bool
}

func NewLRU[V any](capacity int, onEvict provider.EvictFunc) (*LRUProvider[V], error) {
	p := &LRUProvider[V]{onEvict: onEvict}
	c, err := lru.NewWithEvict[provider.Interval, V](capacity, p.evicted)
	if err != nil {
		return nil, fmt.Errorf("golanglru: %w", err)
	}
	p.c = c
	return p, nil
}

func (p *LRUProvider[V]) evicted(key provider.Interval, _ V) {
	if p.muted || p.onEvict == nil {
		return
	}
	p.onEvict(key)
}

func (p *LRUProvider[V]) Get(key provider.Interval) (V, bool) { return p.c.Get(key) }
func (p *LRUProvider[V]) Put(key provider.Interval, value V)  { p.c.Add(key, value) }

func (p *LRUProvider[V]) Remove(key provider.Interval) bool {
	p.muted = true
	defer func() { p.muted = false }()
	return p.c.Remove(key)
}

func (p *LRUProvider[V]) Keys() []provider.Interval { return p.c.Keys() }
func (p *LRUProvider[V]) Len() int                  { return p.c.Len() }

func (p *LRUProvider[V]) Purge() {
	p.muted = true
	defer func() { p.muted = false }()
	p.c.Purge()
}

// twoQueue and arc.ARCCache share this method set. Neither reports evictions
// and Remove returns nothing, so residency is checked first.
type residentCache[V any] interface {
	Get(key provider.Interval) (V, bool)
	Add(key provider.Interval, value V)
	Contains(key provider.Interval) bool
	Remove(key provider.Interval)
	Keys() []provider.Interval
	Len() int
	Purge()
}

type adapter[V any] struct {
	c residentCache[V]
}

func (a adapter[V]) Get(key provider.Interval) (V, bool) { return a.c.Get(key) }
func (a adapter[V]) Put(key provider.Interval, value V)  { a.c.Add(key, value) }

func (a adapter[V]) Remove(key provider.Interval) bool {
	if !a.c.Contains(key) {
		return false
	}
	a.c.Remove(key)
	return true
}

func (a adapter[V]) Keys() []provider.Interval { return a.c.Keys() }
func (a adapter[V]) Len() int                  { return a.c.Len() }
func (a adapter[V]) Purge()                    { a.c.Purge() }

// New2Q builds a 2Q cache (recent + frequent queues with a ghost list).
func New2Q[V any](capacity int) (provider.Provider[V], error) {
	c, err := lru.New2Q[provider.Interval, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("golanglru: 2q: %w", err)
	}
	return adapter[V]{c: c}, nil
}

// NewARC builds an adaptive replacement cache.
func NewARC[V any](capacity int) (provider.Provider[V], error) {
	c, err := arc.NewARC[provider.Interval, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("golanglru: arc: %w", err)
	}
	return adapter[V]{c: c}, nil
}
