package ristretto

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/unkn0wn-root/intervalcache/internal/providertest"
	"github.com/unkn0wn-root/intervalcache/provider"
)

func TestContract(t *testing.T) {
	providertest.Run(t, Factory(Config{}), providertest.Options{})
}

func TestIndexTracksEvictions(t *testing.T) {
	var evicted atomic.Int64
	p, err := New[int64](4, func(provider.Interval) { evicted.Add(1) }, Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	for i := 0; i < 50; i++ {
		p.Put(provider.Interval{Left: i, Right: i + 2}, int64(i))
	}
	if p.Len() > 4 {
		t.Fatalf("Len()=%d exceeds capacity 4", p.Len())
	}
	for _, k := range p.Keys() {
		if _, ok := p.Get(k); !ok {
			t.Fatalf("index lists %v but ristretto does not hold it", k)
		}
	}

	before := evicted.Load()
	p.Purge()
	if evicted.Load() != before {
		t.Fatalf("Purge reported %d evictions", evicted.Load()-before)
	}
	if p.Len() != 0 {
		t.Fatalf("Len()=%d after Purge", p.Len())
	}
}

func TestUnpackableIntervalsBypass(t *testing.T) {
	p, err := New[int64](4, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	if math.MaxInt <= math.MaxUint32 {
		t.Skip("32-bit int")
	}
	wide := provider.Interval{Left: 0, Right: math.MaxInt}
	p.Put(wide, 1)
	if _, ok := p.Get(wide); ok {
		t.Fatal("unpackable interval was stored")
	}
	if p.Remove(wide) {
		t.Fatal("Remove reported an unpackable interval as resident")
	}
}

func TestMetrics(t *testing.T) {
	p, err := New[int64](8, nil, Config{Metrics: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	key := provider.Interval{Left: 1, Right: 5}
	p.Put(key, 15)
	p.Get(key)
	if p.Metrics() == nil || p.Metrics().Hits() != 1 {
		t.Fatalf("expected one recorded hit")
	}
}

func TestCloseReportsNoEvictions(t *testing.T) {
	var evicted atomic.Int64
	p, err := New[int64](8, func(provider.Interval) { evicted.Add(1) }, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		p.Put(provider.Interval{Left: i, Right: i}, int64(i))
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if evicted.Load() != 0 {
		t.Fatalf("Close reported %d evictions", evicted.Load())
	}
}
