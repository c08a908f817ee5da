// intervalbench replays a range-sum workload with and without an interval
// cache and compares providers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/intervalcache"
	"github.com/unkn0wn-root/intervalcache/internal/benchmark"
	"github.com/unkn0wn-root/intervalcache/internal/output"
	"github.com/unkn0wn-root/intervalcache/internal/workload"
	zaplog "github.com/unkn0wn-root/intervalcache/log/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "intervalbench:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	def := workload.DefaultConfig()
	fs := flag.NewFlagSet("intervalbench", flag.ContinueOnError)
	n := fs.Int("n", def.N, "Sequence length")
	q := fs.Int("q", def.Q, "Number of operations")
	capacity := fs.Int("capacity", 1000, "Cache capacity in intervals")
	hot := fs.Int("hot", def.HotPool, "Number of hot intervals")
	pHot := fs.Float64("p-hot", def.PHot, "Share of range queries drawn from the hot pool")
	pUpdate := fs.Float64("p-update", def.PUpdate, "Share of operations that are updates")
	theta := fs.Float64("theta", 0, "Zipf skew over the hot pool in [0,1); 0 picks uniformly")
	seed := fs.Uint64("seed", def.Seed, "Random seed")
	providers := fs.String("providers", "recency", "Comma-separated providers, or \"all\" ("+strings.Join(benchmark.Names(), ",")+")")
	jsonOut := fs.String("json", "", "Also write results to this JSON file")
	record := fs.String("record", "", "Write the generated workload to this trace file")
	tracePath := fs.String("trace", "", "Replay a recorded trace instead of generating a workload")
	debug := fs.Bool("debug", false, "Log cache events at debug level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	zl, err := newZap(*debug)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	log := zaplog.New(zl)

	names, err := benchmark.Select(*providers)
	if err != nil {
		return err
	}

	cfg := def
	cfg.N, cfg.Q, cfg.HotPool = *n, *q, *hot
	cfg.PHot, cfg.PUpdate, cfg.Theta, cfg.Seed = *pHot, *pUpdate, *theta, *seed

	var ops []workload.Op
	if *tracePath != "" {
		t, err := loadTrace(*tracePath)
		if err != nil {
			return err
		}
		cfg = t.Config()
		ops = t.Ops
		log.Info("trace loaded", intervalcache.Fields{"path": *tracePath, "n": cfg.N, "ops": len(ops)})
	} else {
		if ops, err = workload.Generate(cfg); err != nil {
			return err
		}
	}
	if *record != "" {
		if err := saveTrace(*record, workload.Trace{N: cfg.N, MaxValue: cfg.MaxValue, Seed: cfg.Seed, Ops: ops}); err != nil {
			return err
		}
		log.Info("trace recorded", intervalcache.Fields{"path": *record})
	}

	s := workload.Summarize(ops)
	log.Info("workload ready", intervalcache.Fields{
		"n":        cfg.N,
		"ranges":   s.Ranges,
		"updates":  s.Updates,
		"distinct": s.Distinct,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bcfg := benchmark.Config{Capacity: *capacity, Logger: log}
	results, runErr := benchmark.RunAll(ctx, names, bcfg, workload.Sequence(cfg), ops)
	if runErr != nil && !errors.Is(runErr, benchmark.ErrChecksumMismatch) {
		return runErr
	}

	res := output.Build(cfg, *capacity, results)
	if err := output.WriteMarkdown(os.Stdout, res); err != nil {
		return err
	}
	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, res, "intervalbench "+strings.Join(args, " ")); err != nil {
			return err
		}
	}
	return runErr
}

func newZap(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{"stderr"}
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}

func loadTrace(path string) (workload.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return workload.Trace{}, err
	}
	defer f.Close()
	t, err := workload.Load(f)
	if err != nil {
		return workload.Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func saveTrace(path string, t workload.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := workload.Save(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, res output.Results, commandLine string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteJSON(f, res, commandLine); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
