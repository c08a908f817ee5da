package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.Sum { return &mypb.Sum{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// Int64Proto stores sums as google.protobuf.Int64Value (varint on the wire).
type Int64Proto struct{}

var int64Msg = NewProtobuf(func() *wrapperspb.Int64Value { return &wrapperspb.Int64Value{} })

func (Int64Proto) Encode(v int64) ([]byte, error) {
	return int64Msg.Encode(wrapperspb.Int64(v))
}

func (Int64Proto) Decode(b []byte) (int64, error) {
	m, err := int64Msg.Decode(b)
	if err != nil {
		return 0, err
	}
	return m.GetValue(), nil
}
