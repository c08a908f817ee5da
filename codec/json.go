package codec

import "encoding/json"

// JSON stores each sum as its decimal text, so entries in a bigcache or
// freecache store can be read back with a plain dump. It is larger than
// Msgpack for most sums.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
