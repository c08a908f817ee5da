package codec

import (
	"math"
	"testing"
)

func TestInt64Codecs(t *testing.T) {
	codecs := map[string]Codec[int64]{
		"msgpack":  Msgpack[int64]{},
		"cbor":     MustCBOR[int64](),
		"json":     JSON[int64]{},
		"protobuf": Int64Proto{},
		"default":  Default(),
	}
	values := []int64{0, -1, 1, 106, math.MaxInt64, math.MinInt64}

	for name, c := range codecs {
		for _, v := range values {
			b, err := c.Encode(v)
			if err != nil {
				t.Fatalf("%s: Encode(%d): %v", name, v, err)
			}
			got, err := c.Decode(b)
			if err != nil {
				t.Fatalf("%s: Decode(%d): %v", name, v, err)
			}
			if got != v {
				t.Fatalf("%s: got %d want %d", name, got, v)
			}
		}
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	c := MustCBOR[int64]()
	a, _ := c.Encode(42)
	b, _ := c.Encode(42)
	if string(a) != string(b) {
		t.Fatalf("CBOR encodings differ: %x vs %x", a, b)
	}
}

func TestLimitCodecRejectsOversized(t *testing.T) {
	c := LimitCodec[int64]{Inner: Msgpack[int64]{}, MaxDecode: 4}
	if _, err := c.Decode([]byte{1, 2, 3, 4, 5}); err == nil {
		t.Fatalf("expected oversized payload to be rejected")
	}
	b, err := c.Encode(7)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := c.Decode(b); err != nil || v != 7 {
		t.Fatalf("Decode=%d,%v want 7,nil", v, err)
	}
}

func TestDefaultCodecFitsLimit(t *testing.T) {
	c := LimitCodec[int64]{Inner: Default(), MaxDecode: MaxMsgpackInt64}
	for _, v := range []int64{0, -1, 7, 106, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64} {
		b, err := c.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if len(b) > MaxMsgpackInt64 {
			t.Fatalf("Encode(%d) took %d bytes", v, len(b))
		}
		if got, err := c.Decode(b); err != nil || got != v {
			t.Fatalf("Decode=%d,%v want %d,nil", got, err, v)
		}
	}
	if b, _ := Default().Encode(42); len(b) != 1 {
		t.Fatalf("small sum took %d bytes, want 1", len(b))
	}
}

func TestDecodeGarbageFails(t *testing.T) {
	if _, err := (Int64Proto{}).Decode([]byte{0xff, 0xff}); err == nil {
		t.Fatalf("protobuf decode of garbage should fail")
	}
	if _, err := (JSON[int64]{}).Decode([]byte("{")); err == nil {
		t.Fatalf("json decode of garbage should fail")
	}
}
