// Package codec turns cached aggregates into bytes for byte-oriented
// providers (provider/bigcache, provider/freecache).
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Default is the codec byte providers use when none is configured.
func Default() Codec[int64] { return Msgpack[int64]{} }
