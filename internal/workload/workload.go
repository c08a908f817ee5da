// Package workload generates sequences and query mixes for the interval
// cache benchmark.
//
// The default mix is range-heavy and skewed: most queries repeat one of a
// small pool of hot intervals, a few are fresh random intervals, and a small
// share are point updates.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Kind of an operation.
type Kind uint8

const (
	Range Kind = iota
	Update
)

func (k Kind) String() string {
	switch k {
	case Range:
		return "range"
	case Update:
		return "update"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Op is one query. For Range, A and B are the inclusive bounds; for Update,
// A is the index and B the new value.
type Op struct {
	Kind Kind
	A, B int
}

// Config describes a workload.
type Config struct {
	N        int     // sequence length
	Q        int     // number of operations
	HotPool  int     // distinct hot intervals
	PHot     float64 // share of range queries drawn from the hot pool
	PUpdate  float64 // share of operations that are updates
	MaxValue int     // elements and update values are drawn from 1..MaxValue
	// Theta > 0 picks hot intervals with a Zipf skew instead of uniformly.
	Theta float64
	Seed  uint64
}

// DefaultConfig matches the reference run: 100k elements, 50k operations,
// 30 hot intervals hit 95% of the time, 3% updates.
func DefaultConfig() Config {
	return Config{
		N:        100_000,
		Q:        50_000,
		HotPool:  30,
		PHot:     0.95,
		PUpdate:  0.03,
		MaxValue: 100,
		Seed:     1,
	}
}

var ErrInvalidConfig = errors.New("workload: invalid config")

func (c Config) Validate() error {
	switch {
	case c.N < 2:
		return fmt.Errorf("%w: n must be >= 2 but is %d", ErrInvalidConfig, c.N)
	case c.Q < 0:
		return fmt.Errorf("%w: q must be >= 0 but is %d", ErrInvalidConfig, c.Q)
	case c.HotPool < 1:
		return fmt.Errorf("%w: hot pool must be >= 1 but is %d", ErrInvalidConfig, c.HotPool)
	case c.PHot < 0 || c.PHot > 1:
		return fmt.Errorf("%w: p-hot %v outside [0,1]", ErrInvalidConfig, c.PHot)
	case c.PUpdate < 0 || c.PUpdate > 1:
		return fmt.Errorf("%w: p-update %v outside [0,1]", ErrInvalidConfig, c.PUpdate)
	case c.MaxValue < 1:
		return fmt.Errorf("%w: max value must be >= 1 but is %d", ErrInvalidConfig, c.MaxValue)
	case c.Theta < 0 || c.Theta >= 1:
		return fmt.Errorf("%w: theta %v outside [0,1)", ErrInvalidConfig, c.Theta)
	}
	return nil
}

// Sequence returns the N starting elements, each in 1..MaxValue.
func Sequence(c Config) []int32 {
	rng := rand.New(rand.NewPCG(c.Seed, 0x5e9))
	seq := make([]int32, c.N)
	for i := range seq {
		seq[i] = int32(1 + rng.IntN(c.MaxValue))
	}
	return seq
}

// Generate returns Q operations.
//
// Hot intervals span the middle of the sequence: left in [0, N/2], right in
// [N/2, N-1]. Cold intervals are uniform with left <= right.
func Generate(c Config) ([]Op, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed+1))
	half := c.N / 2

	hot := make([]Op, c.HotPool)
	for i := range hot {
		hot[i] = Op{
			Kind: Range,
			A:    rng.IntN(half + 1),
			B:    half + rng.IntN(c.N-half),
		}
	}
	pick := func() Op { return hot[rng.IntN(len(hot))] }
	if c.Theta > 0 {
		z := newZipf(len(hot), c.Theta, rng)
		pick = func() Op { return hot[z.next()] }
	}

	ops := make([]Op, 0, c.Q)
	for range c.Q {
		if rng.Float64() < c.PUpdate {
			ops = append(ops, Op{Kind: Update, A: rng.IntN(c.N), B: 1 + rng.IntN(c.MaxValue)})
			continue
		}
		if rng.Float64() < c.PHot {
			ops = append(ops, pick())
			continue
		}
		left := rng.IntN(c.N)
		ops = append(ops, Op{Kind: Range, A: left, B: left + rng.IntN(c.N-left)})
	}
	return ops, nil
}

// Summary counts operations by kind and distinct range intervals.
type Summary struct {
	Ranges, Updates, Distinct int
}

func Summarize(ops []Op) Summary {
	var s Summary
	seen := make(map[[2]int]struct{})
	for _, op := range ops {
		if op.Kind == Update {
			s.Updates++
			continue
		}
		s.Ranges++
		seen[[2]int{op.A, op.B}] = struct{}{}
	}
	s.Distinct = len(seen)
	return s
}
