// Package util holds key encodings shared by providers whose libraries cannot
// key on a struct.
package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/intervalcache/provider"
)

// StringKey renders key as "left:right".
func StringKey(key provider.Interval) string {
	return strconv.Itoa(key.Left) + ":" + strconv.Itoa(key.Right)
}

// ParseStringKey reverses StringKey.
func ParseStringKey(s string) (provider.Interval, error) {
	l, r, ok := strings.Cut(s, ":")
	if !ok {
		return provider.Interval{}, fmt.Errorf("interval key %q: missing separator", s)
	}
	left, err := strconv.Atoi(l)
	if err != nil {
		return provider.Interval{}, fmt.Errorf("interval key %q: %w", s, err)
	}
	right, err := strconv.Atoi(r)
	if err != nil {
		return provider.Interval{}, fmt.Errorf("interval key %q: %w", s, err)
	}
	return provider.Interval{Left: left, Right: right}, nil
}

// Packable reports whether both bounds fit in 32 bits.
func Packable(key provider.Interval) bool {
	return key.Left >= 0 && key.Right >= 0 &&
		uint64(key.Left) <= math.MaxUint32 && uint64(key.Right) <= math.MaxUint32
}

// Pack encodes key as left<<32 | right. Callers check Packable first.
func Pack(key provider.Interval) uint64 {
	return uint64(uint32(key.Left))<<32 | uint64(uint32(key.Right))
}

// Unpack reverses Pack.
func Unpack(k uint64) provider.Interval {
	return provider.Interval{Left: int(k >> 32), Right: int(uint32(k))}
}
