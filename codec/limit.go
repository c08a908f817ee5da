package codec

import "fmt"

// LimitCodec rejects payloads longer than MaxDecode bytes before handing
// them to Inner. Encode is forwarded unchanged. MaxDecode <= 0 disables the
// check.
//
// With the default codec no sum exceeds MaxMsgpackInt64 bytes, so that limit
// turns a foreign or corrupted entry in a shared byte store into a decode
// error (and a self-heal) instead of an allocation.
type LimitCodec[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
