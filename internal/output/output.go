// Package output renders benchmark results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/unkn0wn-root/intervalcache/internal/benchmark"
	"github.com/unkn0wn-root/intervalcache/internal/workload"
)

// MachineInfo describes where the benchmark ran.
type MachineInfo struct {
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	NumCPU      int    `json:"num_cpu"`
	GoVersion   string `json:"go_version"`
	CommandLine string `json:"command_line,omitempty"`
}

// CurrentMachine fills MachineInfo from the runtime.
func CurrentMachine() MachineInfo {
	return MachineInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}

// Run is one result row as written to JSON.
type Run struct {
	Name          string  `json:"name"`
	ElapsedNs     int64   `json:"elapsed_ns"`
	NsPerOp       float64 `json:"ns_per_op"`
	Speedup       float64 `json:"speedup"`
	Checksum      string  `json:"checksum"`
	HitRate       float64 `json:"hit_rate"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Evictions     uint64  `json:"evictions"`
	Invalidations uint64  `json:"invalidations"`
	Resident      int     `json:"resident"`
}

// Results is the JSON document.
type Results struct {
	Timestamp   string      `json:"timestamp"`
	MachineInfo MachineInfo `json:"machine"`
	N           int         `json:"n"`
	Q           int         `json:"q"`
	Capacity    int         `json:"capacity"`
	Seed        uint64      `json:"seed"`
	Runs        []Run       `json:"runs"`
}

// Build converts benchmark results; results[0] must be the baseline.
func Build(cfg workload.Config, capacity int, results []benchmark.Result) Results {
	out := Results{
		MachineInfo: CurrentMachine(),
		N:           cfg.N,
		Q:           cfg.Q,
		Capacity:    capacity,
		Seed:        cfg.Seed,
		Runs:        make([]Run, 0, len(results)),
	}
	if len(results) == 0 {
		return out
	}
	base := results[0]
	for _, r := range results {
		out.Runs = append(out.Runs, Run{
			Name:          r.Name,
			ElapsedNs:     r.Elapsed.Nanoseconds(),
			NsPerOp:       r.NsPerOp(),
			Speedup:       r.Speedup(base),
			Checksum:      fmt.Sprintf("%016x", r.Checksum),
			HitRate:       r.Stats.HitRate(),
			Hits:          r.Stats.Hits,
			Misses:        r.Stats.Misses,
			Evictions:     r.Stats.Evictions,
			Invalidations: r.Stats.Invalidations,
			Resident:      r.Resident,
		})
	}
	return out
}

// WriteJSON writes results as indented JSON, stamping the time and command
// line.
func WriteJSON(w io.Writer, results Results, commandLine string) error {
	results.Timestamp = time.Now().Format(time.RFC3339)
	results.MachineInfo.CommandLine = commandLine

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// WriteMarkdown writes a results table. The baseline row comes first; the
// rest keep their run order.
func WriteMarkdown(w io.Writer, results Results) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("# interval cache benchmark\n\n")
	p("```\n")
	p("Workload: n=%s q=%s capacity=%s seed=%d\n",
		humanize.Comma(int64(results.N)), humanize.Comma(int64(results.Q)), humanize.Comma(int64(results.Capacity)), results.Seed)
	p("Environment: %s/%s, %d CPUs, %s\n", results.MachineInfo.OS, results.MachineInfo.Arch, results.MachineInfo.NumCPU, results.MachineInfo.GoVersion)
	p("```\n\n")

	p("| Provider      |    Elapsed |  ns/op | Speedup | Hit rate |   Evictions | Invalidated | Resident |\n")
	p("|---------------|------------|--------|---------|----------|-------------|-------------|----------|\n")
	for _, r := range results.Runs {
		hit := "-"
		if r.Hits+r.Misses > 0 {
			hit = fmt.Sprintf("%6.2f%%", r.HitRate*100)
		}
		p("| %-13s | %10s | %6.0f | %6.1fx | %8s | %11s | %11s | %8s |\n",
			r.Name,
			time.Duration(r.ElapsedNs).Round(time.Microsecond),
			r.NsPerOp,
			r.Speedup,
			hit,
			humanize.Comma(int64(r.Evictions)),
			humanize.Comma(int64(r.Invalidations)),
			humanize.Comma(int64(r.Resident)),
		)
	}

	if best, ok := fastest(results.Runs); ok {
		p("\nfastest: %s (%.1fx over no cache)\n", best.Name, best.Speedup)
	}
	return err
}

// fastest skips the baseline row.
func fastest(runs []Run) (Run, bool) {
	if len(runs) < 2 {
		return Run{}, false
	}
	best := runs[1]
	for _, r := range runs[2:] {
		if r.ElapsedNs < best.ElapsedNs {
			best = r
		}
	}
	return best, true
}
