package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/internal/workload"
	"github.com/unkn0wn-root/intervalcache/provider"
)

func smallWorkload(t *testing.T) ([]int32, []workload.Op) {
	t.Helper()
	c := workload.DefaultConfig()
	c.N, c.Q = 2_000, 5_000
	ops, err := workload.Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	return workload.Sequence(c), ops
}

func TestRunAllProvidersAgreeWithBaseline(t *testing.T) {
	seq, ops := smallWorkload(t)
	orig := append([]int32(nil), seq...)

	results, err := RunAll(context.Background(), Names(), Config{Capacity: 64}, seq, ops)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(Names())+1 || results[0].Name != BaselineName {
		t.Fatalf("unexpected results layout: %d results, first %q", len(results), results[0].Name)
	}
	for _, r := range results[1:] {
		if r.Checksum != results[0].Checksum {
			t.Fatalf("%s: checksum differs from baseline", r.Name)
		}
		if r.Stats.Hits == 0 {
			t.Fatalf("%s: no hits on a hot workload", r.Name)
		}
	}
	for i := range seq {
		if seq[i] != orig[i] {
			t.Fatal("runs modified the caller's sequence")
		}
	}
}

func TestDefaultProviderStaysWithinCapacity(t *testing.T) {
	seq, ops := smallWorkload(t)
	r, err := Run(context.Background(), "recency", intervalcache.RecencyProvider, Config{Capacity: 16}, seq, ops)
	if err != nil {
		t.Fatal(err)
	}
	if r.Resident > 16 {
		t.Fatalf("Resident=%d exceeds capacity", r.Resident)
	}
	if r.Stats.Hits+r.Stats.Misses != uint64(workload.Summarize(ops).Ranges) {
		t.Fatalf("hits+misses=%d want %d", r.Stats.Hits+r.Stats.Misses, workload.Summarize(ops).Ranges)
	}
}

// forgetful never reports its keys, so mutations invalidate nothing.
type forgetful struct {
	provider.Provider[int64]
}

func (forgetful) Keys() []provider.Interval { return nil }

func TestStaleProviderIsCaught(t *testing.T) {
	seq, ops := smallWorkload(t)
	base, err := RunBaseline(context.Background(), seq, ops)
	if err != nil {
		t.Fatal(err)
	}
	factory := func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := intervalcache.RecencyProvider(capacity, onEvict)
		return forgetful{p}, err
	}
	r, err := Run(context.Background(), "forgetful", factory, Config{Capacity: 64}, seq, ops)
	if err != nil {
		t.Fatal(err)
	}
	if r.Checksum == base.Checksum {
		t.Fatal("stale answers went unnoticed")
	}
}

func TestRunAllReportsMismatch(t *testing.T) {
	seq, ops := smallWorkload(t)
	registry["forgetful"] = func(capacity int, onEvict provider.EvictFunc) (provider.Provider[int64], error) {
		p, err := intervalcache.RecencyProvider(capacity, onEvict)
		return forgetful{p}, err
	}
	t.Cleanup(func() { delete(registry, "forgetful") })

	results, err := RunAll(context.Background(), []string{"recency", "forgetful"}, Config{Capacity: 64}, seq, ops)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("err=%v want ErrChecksumMismatch", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want all runs completed", len(results))
	}
}

func TestRunHonorsCancel(t *testing.T) {
	seq, ops := smallWorkload(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBaseline(ctx, seq, ops); !errors.Is(err, context.Canceled) {
		t.Fatalf("baseline err=%v", err)
	}
	if _, err := Run(ctx, "recency", intervalcache.RecencyProvider, Config{Capacity: 8}, seq, ops); !errors.Is(err, context.Canceled) {
		t.Fatalf("run err=%v", err)
	}
}

func TestRunRejectsBadCapacity(t *testing.T) {
	seq, ops := smallWorkload(t)
	_, err := Run(context.Background(), "recency", intervalcache.RecencyProvider, Config{}, seq, ops)
	if !errors.Is(err, intervalcache.ErrInvalidCapacity) {
		t.Fatalf("err=%v want ErrInvalidCapacity", err)
	}
}

func TestSelect(t *testing.T) {
	all, err := Select("")
	if err != nil || len(all) != len(Names()) {
		t.Fatalf("Select(\"\")=%v,%v", all, err)
	}
	got, err := Select(" ristretto, LRU ,recency")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"recency", "lru", "ristretto"}
	if len(got) != len(want) {
		t.Fatalf("Select=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Select=%v want %v", got, want)
		}
	}
	if _, err := Select("nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestSpeedup(t *testing.T) {
	base := Result{Elapsed: 100, Ops: 10}
	r := Result{Elapsed: 25, Ops: 10}
	if r.Speedup(base) != 4 {
		t.Fatalf("Speedup=%v", r.Speedup(base))
	}
	if base.NsPerOp() != 10 {
		t.Fatalf("NsPerOp=%v", base.NsPerOp())
	}
}
