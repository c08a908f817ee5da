package freelru

import (
	"testing"

	"github.com/unkn0wn-root/intervalcache/internal/providertest"
	"github.com/unkn0wn-root/intervalcache/provider"
)

func TestContract(t *testing.T) {
	t.Run("synced", func(t *testing.T) {
		providertest.Run(t, Factory(Config{}), providertest.Options{})
	})
	t.Run("sharded", func(t *testing.T) {
		providertest.Run(t, Factory(Config{Sharded: true}), providertest.Options{})
	})
}

func TestSyncedEvictsAtCapacity(t *testing.T) {
	var evicted int
	p, err := New[int64](4, func(provider.Interval) { evicted++ }, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		p.Put(provider.Interval{Left: i, Right: i + 1}, int64(i))
	}
	if p.Len() > 4 {
		t.Fatalf("Len()=%d exceeds capacity 4", p.Len())
	}
	if evicted != 10-p.Len() {
		t.Fatalf("evicted=%d want %d", evicted, 10-p.Len())
	}

	before := evicted
	for _, k := range p.Keys() {
		p.Remove(k)
	}
	if evicted != before {
		t.Fatalf("Remove reported as eviction")
	}
}

func TestHashStable(t *testing.T) {
	a := provider.Interval{Left: 3, Right: 7}
	if hash(a) != hash(provider.Interval{Left: 3, Right: 7}) {
		t.Fatal("hash not deterministic")
	}
	if hash(a) == hash(provider.Interval{Left: 7, Right: 3}) {
		t.Fatal("hash ignores bound order")
	}
}

func TestRejectsBadCapacity(t *testing.T) {
	if _, err := New[int64](0, nil, Config{}); err == nil {
		t.Fatal("expected error")
	}
}
