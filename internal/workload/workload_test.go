package workload

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func small() Config {
	c := DefaultConfig()
	c.N, c.Q = 1_000, 20_000
	return c
}

func TestGenerateShape(t *testing.T) {
	c := small()
	ops, err := Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != c.Q {
		t.Fatalf("len=%d want %d", len(ops), c.Q)
	}
	for i, op := range ops {
		switch op.Kind {
		case Range:
			if op.A < 0 || op.A > op.B || op.B >= c.N {
				t.Fatalf("op %d: bad range %+v", i, op)
			}
		case Update:
			if op.A < 0 || op.A >= c.N || op.B < 1 || op.B > c.MaxValue {
				t.Fatalf("op %d: bad update %+v", i, op)
			}
		default:
			t.Fatalf("op %d: unknown kind %v", i, op.Kind)
		}
	}

	s := Summarize(ops)
	if got := float64(s.Updates) / float64(c.Q); math.Abs(got-c.PUpdate) > 0.01 {
		t.Fatalf("update share %.3f, want ~%.2f", got, c.PUpdate)
	}
	// 30 hot intervals plus ~5% of ranges fresh.
	if maxDistinct := c.HotPool + int(0.08*float64(s.Ranges)); s.Distinct > maxDistinct {
		t.Fatalf("distinct=%d, want <= %d", s.Distinct, maxDistinct)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(small())
	b, _ := Generate(small())
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different workloads")
	}
	c := small()
	c.Seed = 2
	d, _ := Generate(c)
	if slices.Equal(a, d) {
		t.Fatal("different seeds produced the same workload")
	}
	if !slices.Equal(Sequence(small()), Sequence(small())) {
		t.Fatal("Sequence not deterministic")
	}
}

func TestHotIntervalsSpanMiddle(t *testing.T) {
	c := small()
	c.PHot, c.PUpdate = 1, 0
	ops, _ := Generate(c)
	for _, op := range ops {
		if op.A > c.N/2 || op.B < c.N/2 {
			t.Fatalf("hot interval %+v does not span the middle", op)
		}
	}
}

func TestSequenceValues(t *testing.T) {
	c := small()
	for i, v := range Sequence(c) {
		if v < 1 || int(v) > c.MaxValue {
			t.Fatalf("seq[%d]=%d outside 1..%d", i, v, c.MaxValue)
		}
	}
}

func TestValidate(t *testing.T) {
	mut := []func(*Config){
		func(c *Config) { c.N = 1 },
		func(c *Config) { c.Q = -1 },
		func(c *Config) { c.HotPool = 0 },
		func(c *Config) { c.PHot = 1.5 },
		func(c *Config) { c.PUpdate = -0.1 },
		func(c *Config) { c.MaxValue = 0 },
		func(c *Config) { c.Theta = 1 },
	}
	for i, m := range mut {
		c := DefaultConfig()
		m(&c)
		if _, err := Generate(c); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: err=%v want ErrInvalidConfig", i, err)
		}
	}
}

func TestZipfSkew(t *testing.T) {
	z := newZipf(30, 0.99, rand.New(rand.NewPCG(1, 2)))
	counts := make([]int, 30)
	for range 100_000 {
		r := z.next()
		if r < 0 || r >= 30 {
			t.Fatalf("rank %d outside [0,30)", r)
		}
		counts[r]++
	}
	if counts[0] <= counts[29]*5 {
		t.Fatalf("no skew: rank0=%d rank29=%d", counts[0], counts[29])
	}
}

func TestTraceRoundTrip(t *testing.T) {
	c := small()
	c.Theta = 0.9
	ops, err := Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	in := Trace{N: c.N, MaxValue: c.MaxValue, Seed: c.Seed, Ops: ops}

	var buf bytes.Buffer
	if err := Save(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.N != in.N || out.MaxValue != in.MaxValue || out.Seed != in.Seed || !slices.Equal(out.Ops, in.Ops) {
		t.Fatal("trace changed across Save/Load")
	}
	if !slices.Equal(Sequence(out.Config()), Sequence(c)) {
		t.Fatal("trace does not rebuild the sequence")
	}
}

func TestLoadRejectsOutOfRangeOps(t *testing.T) {
	cases := map[string]string{
		"header":    "not-a-trace\n",
		"range":     "intervalcache-trace,1,10,100,1\nR,3,10\n",
		"reversed":  "intervalcache-trace,1,10,100,1\nR,5,4\n",
		"update":    "intervalcache-trace,1,10,100,1\nU,-1,5\n",
		"kind":      "intervalcache-trace,1,10,100,1\nX,1,2\n",
		"truncated": "intervalcache-trace,1,10,100,1\nR,1\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(bytes.NewReader(compress(t, text))); !errors.Is(err, ErrBadTrace) {
				t.Fatalf("err=%v want ErrBadTrace", err)
			}
		})
	}
}

func compress(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}
