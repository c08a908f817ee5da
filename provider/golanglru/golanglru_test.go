package golanglru

import (
	"testing"

	"github.com/unkn0wn-root/intervalcache/internal/providertest"
	"github.com/unkn0wn-root/intervalcache/provider"
)

func TestContract(t *testing.T) {
	for _, p := range []Policy{LRU, TwoQueue, ARC} {
		t.Run(p.String(), func(t *testing.T) {
			providertest.Run(t, Factory(p), providertest.Options{})
		})
	}
}

func TestLRUReportsOnlyCapacityEvictions(t *testing.T) {
	var evicted []provider.Interval
	p, err := NewLRU[int64](2, func(k provider.Interval) { evicted = append(evicted, k) })
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := provider.Interval{Left: 0, Right: 1}, provider.Interval{Left: 1, Right: 2}, provider.Interval{Left: 2, Right: 3}

	p.Put(a, 1)
	p.Put(b, 2)
	p.Get(a) // b is now oldest
	p.Put(c, 3)
	if len(evicted) != 1 || evicted[0] != b {
		t.Fatalf("evicted=%v want [%v]", evicted, b)
	}

	p.Remove(a)
	p.Purge()
	if len(evicted) != 1 {
		t.Fatalf("Remove/Purge reported as evictions: %v", evicted)
	}
}

func TestUnknownPolicy(t *testing.T) {
	if _, err := Factory(Policy(42))(4, nil); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestInvalidCapacity(t *testing.T) {
	for _, p := range []Policy{LRU, TwoQueue, ARC} {
		if _, err := Factory(p)(0, nil); err == nil {
			t.Fatalf("%s: expected error for capacity 0", p)
		}
	}
}
