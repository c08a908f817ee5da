package intervalcache

import (
	"github.com/unkn0wn-root/intervalcache/provider"
)

// Interval is an inclusive index range of the sequence.
type Interval = provider.Interval

// Element lists the sequence element types. Each is at most 32 bits wide, so
// an int64 sum over any sequence that fits in memory cannot overflow.
type Element interface {
	~int8 | ~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

// Options tune the behavior of the interval cache.
// Only Capacity is required; others have sensible defaults.
type Options struct {
	// Required
	Capacity int // max resident intervals; must be > 0

	Provider provider.Factory[int64] // nil => RecencyProvider (strict LRU)
	Logger   Logger                  // nil => NopLogger
	Hooks    Hooks                   // nil => NopHooks
}

// New constructs an empty cache. It returns ErrInvalidCapacity when
// opts.Capacity <= 0.
func New[E Element](opts Options) (*Cache[E], error) {
	return newCache[E](opts)
}
