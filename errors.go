package intervalcache

import (
	"fmt"
)

type constError string

func (errStr constError) Error() string { return string(errStr) }

const (
	// ErrInvalidCapacity is returned from [New] when Options.Capacity <= 0.
	ErrInvalidCapacity = constError("intervalcache: invalid capacity")
	// ErrInvalidRange is wrapped by every [RangeError].
	ErrInvalidRange = constError("intervalcache: invalid range")
	// ErrInvalidIndex is wrapped by every [IndexError].
	ErrInvalidIndex = constError("intervalcache: invalid index")
	// ErrClosed is returned by calls made after [Cache.Close].
	ErrClosed = constError("intervalcache: cache is closed")
)

// RangeError reports a query whose bounds are reversed or fall outside the
// sequence.
type RangeError struct {
	Left, Right int
	Len         int
}

func (e *RangeError) Error() string {
	switch {
	case e.Left > e.Right:
		return fmt.Sprintf("%s: left %d > right %d", ErrInvalidRange, e.Left, e.Right)
	default:
		return fmt.Sprintf("%s: [%d,%d] outside [0,%d]", ErrInvalidRange, e.Left, e.Right, e.Len-1)
	}
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// IndexError reports a mutation outside the sequence.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d outside [0,%d]", ErrInvalidIndex, e.Index, e.Len-1)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

func checkRange(left, right, n int) error {
	if left < 0 || right >= n || left > right {
		return &RangeError{Left: left, Right: right, Len: n}
	}
	return nil
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Index: index, Len: n}
	}
	return nil
}
