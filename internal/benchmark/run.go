// Package benchmark replays a workload against a bare sequence and against
// interval caches backed by each provider.
package benchmark

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/internal/workload"
	"github.com/unkn0wn-root/intervalcache/provider"
)

// BaselineName labels the uncached run.
const BaselineName = "no-cache"

// ErrChecksumMismatch means a cached run answered some query differently
// from the uncached baseline.
var ErrChecksumMismatch = errors.New("benchmark: checksum mismatch")

// Result of one run.
type Result struct {
	Name     string
	Elapsed  time.Duration
	Ops      int
	Checksum uint64 // xxh3 over every range answer, in order
	Stats    intervalcache.Stats
	Resident int // intervals resident when the run ended
}

// NsPerOp is the mean time per operation.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

// Speedup is how many times faster r ran than base.
func (r Result) Speedup(base Result) float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(base.Elapsed) / float64(r.Elapsed)
}

type answers struct {
	h   *xxh3.Hasher
	buf [8]byte
}

func newAnswers() *answers { return &answers{h: xxh3.New()} }

func (a *answers) add(v int64) {
	binary.LittleEndian.PutUint64(a.buf[:], uint64(v))
	_, _ = a.h.Write(a.buf[:])
}

func (a *answers) sum() uint64 { return a.h.Sum64() }

// cancelEvery is how many ops run between context checks.
const cancelEvery = 1024

// RunBaseline replays ops by summing directly. seq is copied.
func RunBaseline(ctx context.Context, seq []int32, ops []workload.Op) (Result, error) {
	s := slices.Clone(seq)
	ans := newAnswers()

	start := time.Now()
	for i, op := range ops {
		if i%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if op.Kind == workload.Update {
			s[op.A] = int32(op.B)
			continue
		}
		var total int64
		for _, v := range s[op.A : op.B+1] {
			total += int64(v)
		}
		ans.add(total)
	}
	return Result{Name: BaselineName, Elapsed: time.Since(start), Ops: len(ops), Checksum: ans.sum()}, nil
}

// Config for a cached run.
type Config struct {
	Capacity int
	Logger   intervalcache.Logger // handed to the cache; nil => NopLogger
	Hooks    intervalcache.Hooks  // nil => NopHooks
}

// Run replays ops through an interval cache built on factory. seq is copied.
func Run(ctx context.Context, name string, factory provider.Factory[int64], cfg Config, seq []int32, ops []workload.Op) (Result, error) {
	c, err := intervalcache.New[int32](intervalcache.Options{
		Capacity: cfg.Capacity,
		Provider: factory,
		Logger:   cfg.Logger,
		Hooks:    cfg.Hooks,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	defer c.Close()

	s := slices.Clone(seq)
	ans := newAnswers()

	start := time.Now()
	for i, op := range ops {
		if i%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if op.Kind == workload.Update {
			if err := c.Mutate(s, op.A, int32(op.B)); err != nil {
				return Result{}, fmt.Errorf("%s: op %d: %w", name, i, err)
			}
			continue
		}
		v, err := c.Query(s, op.A, op.B)
		if err != nil {
			return Result{}, fmt.Errorf("%s: op %d: %w", name, i, err)
		}
		ans.add(v)
	}
	elapsed := time.Since(start)

	return Result{
		Name:     name,
		Elapsed:  elapsed,
		Ops:      len(ops),
		Checksum: ans.sum(),
		Stats:    c.Stats(),
		Resident: c.Len(),
	}, nil
}

// RunAll runs the baseline and then every named provider. The first result
// is the baseline. A provider whose checksum differs from the baseline makes
// RunAll fail with ErrChecksumMismatch after all runs have completed.
func RunAll(ctx context.Context, names []string, cfg Config, seq []int32, ops []workload.Op) ([]Result, error) {
	log := cfg.Logger
	if log == nil {
		log = intervalcache.NopLogger{}
	}

	base, err := RunBaseline(ctx, seq, ops)
	if err != nil {
		return nil, err
	}
	log.Info("baseline done", intervalcache.Fields{"elapsed": base.Elapsed.String(), "ops": base.Ops})

	results := []Result{base}
	var mismatched []string
	for _, name := range names {
		factory, ok := Lookup(name)
		if !ok {
			return results, fmt.Errorf("unknown provider %q", name)
		}
		r, err := Run(ctx, name, factory, cfg, seq, ops)
		if err != nil {
			return results, err
		}
		if r.Checksum != base.Checksum {
			mismatched = append(mismatched, name)
			log.Error("answers differ from baseline", intervalcache.Fields{"provider": name})
		}
		log.Info("provider done", intervalcache.Fields{
			"provider": name,
			"elapsed":  r.Elapsed.String(),
			"hit_rate": r.Stats.HitRate(),
		})
		results = append(results, r)
	}
	if len(mismatched) > 0 {
		return results, fmt.Errorf("%w: %v", ErrChecksumMismatch, mismatched)
	}
	return results, nil
}
