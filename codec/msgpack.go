package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MaxMsgpackInt64 is the longest msgpack encoding of an int64 sum: a type
// byte followed by eight bytes.
const MaxMsgpackInt64 = 9

// Msgpack encodes sums with vmihailenco/msgpack/v5 using compact integers,
// so a sum takes between 1 and MaxMsgpackInt64 bytes. The zero value is
// ready to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
