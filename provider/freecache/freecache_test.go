package freecache

import (
	"testing"

	"github.com/unkn0wn-root/intervalcache/codec"
	"github.com/unkn0wn-root/intervalcache/internal/providertest"
	"github.com/unkn0wn-root/intervalcache/provider"
)

func TestContract(t *testing.T) {
	t.Run("msgpack", func(t *testing.T) {
		providertest.Run(t, Factory(Config[int64]{}), providertest.Options{})
	})
	t.Run("protobuf", func(t *testing.T) {
		providertest.Run(t, Factory(Config[int64]{Codec: codec.Int64Proto{}}), providertest.Options{})
	})
}

func TestCollidingWriteIsDropped(t *testing.T) {
	p, err := New[int64](16, Config[int64]{})
	if err != nil {
		t.Fatal(err)
	}
	a := provider.Interval{Left: 1, Right: 4}
	b := provider.Interval{Left: 2, Right: 4}

	// An entry framed for b stored under a's key.
	p.Put(b, 9)
	raw, err := p.c.Get(key(b))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.c.Set(key(a), raw, 0); err != nil {
		t.Fatal(err)
	}

	if _, ok := p.Get(a); ok {
		t.Fatal("entry for another interval served")
	}
	if v, ok := p.Get(b); !ok || v != 9 {
		t.Fatalf("Get(b)=%d,%v want 9,true", v, ok)
	}
	if p.Healed() != 1 {
		t.Fatalf("Healed()=%d want 1", p.Healed())
	}
}
