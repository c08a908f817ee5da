package bytestore

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/intervalcache/codec"
	"github.com/unkn0wn-root/intervalcache/internal/providertest"
	"github.com/unkn0wn-root/intervalcache/internal/wire"
	"github.com/unkn0wn-root/intervalcache/provider"
)

type mapBackend struct {
	m      map[provider.Interval][]byte
	getErr error
}

func newMapBackend() *mapBackend { return &mapBackend{m: map[provider.Interval][]byte{}} }

func (b *mapBackend) Get(k provider.Interval) ([]byte, bool, error) {
	if b.getErr != nil {
		return nil, false, b.getErr
	}
	v, ok := b.m[k]
	return v, ok, nil
}

func (b *mapBackend) Set(k provider.Interval, v []byte) error {
	b.m[k] = append([]byte(nil), v...)
	return nil
}

func (b *mapBackend) Del(k provider.Interval) bool {
	_, ok := b.m[k]
	delete(b.m, k)
	return ok
}

func (b *mapBackend) Keys() []provider.Interval {
	out := make([]provider.Interval, 0, len(b.m))
	for k := range b.m {
		out = append(out, k)
	}
	return out
}

func (b *mapBackend) Len() int { return len(b.m) }
func (b *mapBackend) Reset()   { clear(b.m) }

func TestContract(t *testing.T) {
	factory := func(int, provider.EvictFunc) (provider.Provider[int64], error) {
		return New[int64](newMapBackend(), nil, nil), nil
	}
	providertest.Run(t, factory, providertest.Options{})
}

func TestSelfHeal(t *testing.T) {
	key := provider.Interval{Left: 2, Right: 6}
	other := provider.Interval{Left: 3, Right: 6}

	cases := []struct {
		name  string
		entry func(t *testing.T) []byte
	}{
		{"garbage", func(*testing.T) []byte { return []byte("not an entry") }},
		{"truncated", func(t *testing.T) []byte {
			b, _ := codec.Msgpack[int64]{}.Encode(40)
			e := wire.EncodeEntry(key, b)
			return e[:len(e)-1]
		}},
		{"other interval", func(t *testing.T) []byte {
			b, _ := codec.Msgpack[int64]{}.Encode(40)
			return wire.EncodeEntry(other, b)
		}},
		{"undecodable payload", func(*testing.T) []byte {
			return wire.EncodeEntry(key, []byte{0xc1}) // msgpack "never used" byte
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			be := newMapBackend()
			s := New[int64](be, nil, nil)
			be.m[key] = tc.entry(t)

			if v, ok := s.Get(key); ok {
				t.Fatalf("Get returned %d from a bad entry", v)
			}
			if _, still := be.m[key]; still {
				t.Fatal("bad entry was not deleted")
			}
			if s.Healed() != 1 {
				t.Fatalf("Healed()=%d want 1", s.Healed())
			}
		})
	}
}

func TestLimitCodecRejectsOversizedPayload(t *testing.T) {
	be := newMapBackend()
	s := New[int64](be, codec.LimitCodec[int64]{Inner: codec.JSON[int64]{}, MaxDecode: 4}, nil)
	key := provider.Interval{Left: 0, Right: 9}

	s.Put(key, 7)
	if v, ok := s.Get(key); !ok || v != 7 {
		t.Fatalf("Get=%d,%v want 7,true", v, ok)
	}
	be.m[key] = wire.EncodeEntry(key, []byte("123456789"))
	if _, ok := s.Get(key); ok {
		t.Fatal("oversized payload was decoded")
	}
	if s.Healed() != 1 {
		t.Fatalf("Healed()=%d want 1", s.Healed())
	}
}

func TestBackendErrorIsMiss(t *testing.T) {
	be := newMapBackend()
	s := New[int64](be, nil, nil)
	key := provider.Interval{Left: 1, Right: 1}
	s.Put(key, 3)

	be.getErr = errors.New("boom")
	if _, ok := s.Get(key); ok {
		t.Fatal("backend error reported as hit")
	}
	if _, still := be.m[key]; !still {
		t.Fatal("entry dropped on backend error")
	}
	if s.Healed() != 0 {
		t.Fatal("backend error counted as self-heal")
	}
}
