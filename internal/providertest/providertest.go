// Package providertest is the contract every provider.Provider must meet,
// shared by the provider packages' tests.
package providertest

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/provider"
)

// Options describe provider quirks the contract has to allow for.
type Options struct {
	// Capacity used for the basic operation checks; 0 => 1024.
	// Large enough that no eviction happens with a handful of keys.
	Capacity int
	// ApproximateLen is set for providers whose Len trails writes
	// (asynchronous admission or eviction bookkeeping).
	ApproximateLen bool
}

var keys = []provider.Interval{
	{Left: 0, Right: 0},
	{Left: 1, Right: 3},
	{Left: 2, Right: 9},
}

// Run executes the provider contract against factory.
func Run(t *testing.T, factory provider.Factory[int64], opts Options) {
	t.Helper()
	if opts.Capacity == 0 {
		opts.Capacity = 1024
	}

	t.Run("GetMiss", func(t *testing.T) {
		p := build(t, factory, opts.Capacity)
		if v, ok := p.Get(keys[0]); ok {
			t.Fatalf("empty provider returned %d for %v", v, keys[0])
		}
	})

	t.Run("PutGetOverwrite", func(t *testing.T) {
		p := build(t, factory, opts.Capacity)
		for i, k := range keys {
			p.Put(k, int64(i)-1) // includes -1
		}
		for i, k := range keys {
			if v, ok := p.Get(k); !ok || v != int64(i)-1 {
				t.Fatalf("Get(%v)=%d,%v want %d,true", k, v, ok, int64(i)-1)
			}
		}
		p.Put(keys[1], 106)
		if v, ok := p.Get(keys[1]); !ok || v != 106 {
			t.Fatalf("after overwrite Get(%v)=%d,%v want 106,true", keys[1], v, ok)
		}
		if !opts.ApproximateLen && p.Len() != len(keys) {
			t.Fatalf("Len()=%d want %d", p.Len(), len(keys))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		p := build(t, factory, opts.Capacity)
		for _, k := range keys {
			p.Put(k, 1)
		}
		if !p.Remove(keys[1]) {
			t.Fatalf("Remove(%v)=false for resident key", keys[1])
		}
		if p.Remove(keys[1]) {
			t.Fatalf("second Remove(%v)=true", keys[1])
		}
		if _, ok := p.Get(keys[1]); ok {
			t.Fatalf("Get(%v) hit after Remove", keys[1])
		}
		for _, k := range []provider.Interval{keys[0], keys[2]} {
			if _, ok := p.Get(k); !ok {
				t.Fatalf("Remove(%v) dropped %v", keys[1], k)
			}
		}
	})

	t.Run("KeysIncludeResident", func(t *testing.T) {
		p := build(t, factory, opts.Capacity)
		for _, k := range keys {
			p.Put(k, 1)
		}
		got := p.Keys()
		for _, k := range keys {
			if !slices.Contains(got, k) {
				t.Fatalf("Keys()=%v missing resident %v", got, k)
			}
		}
	})

	t.Run("Purge", func(t *testing.T) {
		p := build(t, factory, opts.Capacity)
		for _, k := range keys {
			p.Put(k, 1)
		}
		p.Purge()
		for _, k := range keys {
			if _, ok := p.Get(k); ok {
				t.Fatalf("Get(%v) hit after Purge", k)
			}
		}
		if !opts.ApproximateLen && p.Len() != 0 {
			t.Fatalf("Len()=%d after Purge", p.Len())
		}
		p.Put(keys[0], 5)
		if v, ok := p.Get(keys[0]); !ok || v != 5 {
			t.Fatalf("provider unusable after Purge: %d,%v", v, ok)
		}
	})

	t.Run("CacheCoherence", func(t *testing.T) {
		Coherence(t, factory, 256)
	})
}

// Coherence drives an intervalcache.Cache backed by factory with random
// queries and mutations and checks every answer against a direct sum.
func Coherence(t *testing.T, factory provider.Factory[int64], capacity int) {
	t.Helper()
	const n = 96
	rng := rand.New(rand.NewPCG(3, 5))
	seq := make([]int32, n)
	for i := range seq {
		seq[i] = int32(rng.IntN(100) + 1)
	}

	c, err := intervalcache.New[int32](intervalcache.Options{Capacity: capacity, Provider: factory})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	for i := 0; i < 5_000; i++ {
		if rng.IntN(20) == 0 {
			if err := c.Mutate(seq, rng.IntN(n), int32(rng.IntN(100)+1)); err != nil {
				t.Fatalf("Mutate: %v", err)
			}
			continue
		}
		l := rng.IntN(n / 2)
		r := n/2 + rng.IntN(n/2)
		got, err := c.Query(seq, l, r)
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		var want int64
		for _, v := range seq[l : r+1] {
			want += int64(v)
		}
		if got != want {
			t.Fatalf("op %d: Query(%d,%d)=%d want %d", i, l, r, got, want)
		}
	}
}

func build(t *testing.T, factory provider.Factory[int64], capacity int) provider.Provider[int64] {
	t.Helper()
	p, err := factory(capacity, nil)
	if err != nil {
		t.Fatalf("factory(%d): %v", capacity, err)
	}
	if cl, ok := p.(provider.Closer); ok {
		t.Cleanup(func() { _ = cl.Close() })
	}
	return p
}
