package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const traceMagic = "intervalcache-trace"

var ErrBadTrace = errors.New("workload: malformed trace")

// Trace is a recorded workload: enough to rebuild the starting sequence and
// replay the operations.
type Trace struct {
	N        int
	MaxValue int
	Seed     uint64
	Ops      []Op
}

// Config returns the sequence parameters of the trace.
func (t Trace) Config() Config {
	return Config{N: t.N, MaxValue: t.MaxValue, Seed: t.Seed, Q: len(t.Ops)}
}

// Save writes t as zstd-compressed text: a header line followed by one
// operation per line, "R,left,right" or "U,index,value".
func Save(w io.Writer, t Trace) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	bw := bufio.NewWriter(enc)
	fmt.Fprintf(bw, "%s,1,%d,%d,%d\n", traceMagic, t.N, t.MaxValue, t.Seed)

	var line []byte
	for _, op := range t.Ops {
		line = line[:0]
		switch op.Kind {
		case Range:
			line = append(line, 'R')
		case Update:
			line = append(line, 'U')
		default:
			enc.Close()
			return fmt.Errorf("%w: unknown op kind %d", ErrBadTrace, op.Kind)
		}
		line = append(line, ',')
		line = strconv.AppendInt(line, int64(op.A), 10)
		line = append(line, ',')
		line = strconv.AppendInt(line, int64(op.B), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Load reads a trace written by Save and checks every operation against
// the recorded sequence length.
func Load(r io.Reader) (Trace, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Trace{}, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	scanner := bufio.NewScanner(dec)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Trace{}, fmt.Errorf("read trace: %w", err)
		}
		return Trace{}, fmt.Errorf("%w: empty", ErrBadTrace)
	}
	t, err := parseHeader(scanner.Text())
	if err != nil {
		return Trace{}, err
	}

	for lineNo := 2; scanner.Scan(); lineNo++ {
		text := scanner.Text()
		if text == "" {
			continue
		}
		op, err := parseOp(text, t.N)
		if err != nil {
			return Trace{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Ops = append(t.Ops, op)
	}
	if err := scanner.Err(); err != nil {
		return Trace{}, fmt.Errorf("read trace: %w", err)
	}
	return t, nil
}

func parseHeader(s string) (Trace, error) {
	f := strings.Split(s, ",")
	if len(f) != 5 || f[0] != traceMagic || f[1] != "1" {
		return Trace{}, fmt.Errorf("%w: bad header %q", ErrBadTrace, s)
	}
	n, err1 := strconv.Atoi(f[2])
	maxValue, err2 := strconv.Atoi(f[3])
	seed, err3 := strconv.ParseUint(f[4], 10, 64)
	if err := errors.Join(err1, err2, err3); err != nil {
		return Trace{}, fmt.Errorf("%w: header: %w", ErrBadTrace, err)
	}
	if n < 2 || maxValue < 1 {
		return Trace{}, fmt.Errorf("%w: header n=%d max=%d", ErrBadTrace, n, maxValue)
	}
	return Trace{N: n, MaxValue: maxValue, Seed: seed}, nil
}

func parseOp(s string, n int) (Op, error) {
	kind, rest, ok := strings.Cut(s, ",")
	if !ok {
		return Op{}, fmt.Errorf("%w: %q", ErrBadTrace, s)
	}
	as, bs, ok := strings.Cut(rest, ",")
	if !ok {
		return Op{}, fmt.Errorf("%w: %q", ErrBadTrace, s)
	}
	a, err := strconv.Atoi(as)
	if err != nil {
		return Op{}, fmt.Errorf("%w: %w", ErrBadTrace, err)
	}
	b, err := strconv.Atoi(bs)
	if err != nil {
		return Op{}, fmt.Errorf("%w: %w", ErrBadTrace, err)
	}

	switch kind {
	case "R":
		if a < 0 || a > b || b >= n {
			return Op{}, fmt.Errorf("%w: range [%d,%d] outside sequence of %d", ErrBadTrace, a, b, n)
		}
		return Op{Kind: Range, A: a, B: b}, nil
	case "U":
		if a < 0 || a >= n {
			return Op{}, fmt.Errorf("%w: update index %d outside sequence of %d", ErrBadTrace, a, n)
		}
		return Op{Kind: Update, A: a, B: b}, nil
	default:
		return Op{}, fmt.Errorf("%w: unknown op %q", ErrBadTrace, kind)
	}
}
