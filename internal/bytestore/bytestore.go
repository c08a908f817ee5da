// Package bytestore turns a byte-oriented cache into a provider.Provider.
//
// Values are encoded with a codec and framed with internal/wire, which
// carries the interval. An entry that fails framing, belongs to another
// interval or does not decode is deleted and treated as a miss.
package bytestore

import (
	"errors"
	"sync/atomic"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/codec"
	"github.com/unkn0wn-root/intervalcache/internal/wire"
	"github.com/unkn0wn-root/intervalcache/provider"
)

// Backend is a byte store. It owns the key encoding.
type Backend interface {
	// Get returns (entry, true, nil) on hit and (nil, false, nil) on miss.
	Get(key provider.Interval) ([]byte, bool, error)
	Set(key provider.Interval, entry []byte) error
	// Del reports whether key was present.
	Del(key provider.Interval) bool
	Keys() []provider.Interval
	Len() int
	Reset()
}

type Store[V any] struct {
	b      Backend
	codec  codec.Codec[V]
	log    intervalcache.Logger
	healed atomic.Uint64
}

// New wraps b. A nil codec means Msgpack; a nil logger discards.
func New[V any](b Backend, c codec.Codec[V], log intervalcache.Logger) *Store[V] {
	if c == nil {
		c = codec.Msgpack[V]{}
	}
	if log == nil {
		log = intervalcache.NopLogger{}
	}
	return &Store[V]{b: b, codec: c, log: log}
}

func (s *Store[V]) Get(key provider.Interval) (V, bool) {
	var zero V
	raw, ok, err := s.b.Get(key)
	if err != nil {
		s.log.Warn("byte store get failed", intervalcache.Fields{"key": key.String(), "err": err})
		return zero, false
	}
	if !ok {
		return zero, false
	}
	payload, err := wire.DecodeEntryFor(key, raw)
	if err != nil {
		s.heal(key, err)
		return zero, false
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.heal(key, err)
		return zero, false
	}
	return v, true
}

func (s *Store[V]) Put(key provider.Interval, value V) {
	payload, err := s.codec.Encode(value)
	if err != nil {
		s.log.Warn("encode failed; not cached", intervalcache.Fields{"key": key.String(), "err": err})
		return
	}
	if err := s.b.Set(key, wire.EncodeEntry(key, payload)); err != nil {
		s.log.Warn("byte store set failed", intervalcache.Fields{"key": key.String(), "err": err})
	}
}

func (s *Store[V]) Remove(key provider.Interval) bool { return s.b.Del(key) }
func (s *Store[V]) Keys() []provider.Interval         { return s.b.Keys() }
func (s *Store[V]) Len() int                          { return s.b.Len() }
func (s *Store[V]) Purge()                            { s.b.Reset() }

// Healed returns how many unreadable entries have been dropped.
func (s *Store[V]) Healed() uint64 { return s.healed.Load() }

// Backend returns the wrapped store.
func (s *Store[V]) Backend() Backend { return s.b }

func (s *Store[V]) heal(key provider.Interval, err error) {
	s.b.Del(key)
	s.healed.Add(1)
	reason := "corrupt"
	if errors.Is(err, wire.ErrMismatch) {
		reason = "mismatch"
	}
	s.log.Warn("dropping unreadable entry", intervalcache.Fields{"key": key.String(), "reason": reason, "err": err})
}
