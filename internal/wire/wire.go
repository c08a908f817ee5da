// Package wire frames cached sums for byte-oriented providers.
//
// Entry: magic(4) | ver(1) | left(u64 be) | right(u64 be) | vlen(u32 be) | payload(vlen)
//
// Carrying the interval in the entry lets a provider reject values written by
// someone else, or returned for a colliding key, and drop them.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/unkn0wn-root/intervalcache/provider"
)

const version byte = 1

// KeySize is the length of an encoded key.
const KeySize = 16

const entryHeader = 4 + 1 + KeySize + 4

var (
	ErrCorrupt  = errors.New("intervalcache: corrupt entry")
	ErrMismatch = errors.New("intervalcache: entry belongs to another interval")
	magic4      = [...]byte{'I', 'V', 'S', 'C'}
)

// AppendKey appends the 16-byte big-endian encoding of key to dst.
func AppendKey(dst []byte, key provider.Interval) []byte {
	dst = binary.BigEndian.AppendUint64(dst, uint64(key.Left))
	return binary.BigEndian.AppendUint64(dst, uint64(key.Right))
}

// DecodeKey parses a key produced by AppendKey.
func DecodeKey(b []byte) (provider.Interval, error) {
	if len(b) != KeySize {
		return provider.Interval{}, ErrCorrupt
	}
	return provider.Interval{
		Left:  int(binary.BigEndian.Uint64(b[:8])),
		Right: int(binary.BigEndian.Uint64(b[8:])),
	}, nil
}

func EncodeEntry(key provider.Interval, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(entryHeader + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.Write(AppendKey(make([]byte, 0, KeySize), key))

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeEntry validates the frame and returns the stored interval and
// payload. The payload aliases b.
func DecodeEntry(b []byte) (provider.Interval, []byte, error) {
	if len(b) < entryHeader || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return provider.Interval{}, nil, ErrCorrupt
	}
	off := 5

	key, err := DecodeKey(b[off : off+KeySize])
	if err != nil {
		return provider.Interval{}, nil, err
	}
	off += KeySize

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen != len(b)-off { // strict framing: no short or trailing bytes
		return provider.Interval{}, nil, ErrCorrupt
	}
	return key, b[off:], nil
}

// DecodeEntryFor is DecodeEntry plus a check that the entry was written for
// want.
func DecodeEntryFor(want provider.Interval, b []byte) ([]byte, error) {
	key, payload, err := DecodeEntry(b)
	if err != nil {
		return nil, err
	}
	if key != want {
		return nil, ErrMismatch
	}
	return payload, nil
}
