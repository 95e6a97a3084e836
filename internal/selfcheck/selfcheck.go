// SPDX-License-Identifier: MPL-2.0

package selfcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

const (
	// DefaultCount is the number of cases Run checks when Count is zero.
	DefaultCount = 10000
	// DefaultMaxLen bounds generated inputs when MaxLen is zero.
	DefaultMaxLen = 12
)

// ErrCheckFailed is the sentinel error wrapped by FailureError.
var ErrCheckFailed = errors.New("self-check failed")

type (
	// Options configures Run.
	Options struct {
		Count   int
		Seed    uint64
		Workers int
		MaxLen  int
		Logger  *log.Logger
	}

	// Summary describes a completed run.
	Summary struct {
		Cases   int64
		Seed    uint64
		Workers int
		Elapsed time.Duration
	}

	// FailureError describes the first case that broke a property. Case
	// and Seed regenerate the inputs with CaseInputs.
	FailureError struct {
		Seed     uint64
		Case     int
		Property string
		A, B     []rune
		Detail   string
	}
)

// Error implements the error interface.
func (e *FailureError) Error() string {
	return fmt.Sprintf("%s broken at case %d (seed %d): %s; a=%U b=%U", e.Property, e.Case, e.Seed, e.Detail, e.A, e.B)
}

// Unwrap returns ErrCheckFailed for errors.Is() compatibility.
func (e *FailureError) Unwrap() error { return ErrCheckFailed }

// CaseInputs regenerates the pair of inputs of one case. Each case has its
// own generator, so results do not depend on the worker count.
func CaseInputs(seed uint64, index, maxLen int) (a, b []rune) {
	r := rand.New(rand.NewPCG(seed, uint64(index)))
	a = RandomText(r, maxLen)
	if r.IntN(4) == 0 && len(a) > 0 {
		b = append(slices.Clone(a[:r.IntN(len(a))]), RandomText(r, maxLen)...)
	} else {
		b = RandomText(r, maxLen)
	}
	return a, b
}

// Run checks round trip, order preservation of bytes and packed keys, and
// resynchronization after a control on Count random input pairs. It stops
// at the first failure and returns it as a *FailureError.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.MaxLen <= 0 {
		opts.MaxLen = DefaultMaxLen
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	opts.Workers = min(opts.Workers, opts.Count)

	start := time.Now()
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := range opts.Workers {
		g.Go(func() error {
			for i := w; i < opts.Count; i += opts.Workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				a, b := CaseInputs(opts.Seed, i, opts.MaxLen)
				if err := checkCase(a, b); err != nil {
					err.Seed, err.Case = opts.Seed, i
					return err
				}
				done.Add(1)
			}
			if opts.Logger != nil {
				opts.Logger.Debug("worker finished", "worker", w)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if opts.Logger != nil {
			opts.Logger.Error("self-check stopped", "err", err, "cases", done.Load())
		}
		return nil, err
	}

	s := &Summary{Cases: done.Load(), Seed: opts.Seed, Workers: opts.Workers, Elapsed: time.Since(start)}
	if opts.Logger != nil {
		opts.Logger.Info("self-check passed", "cases", s.Cases, "seed", s.Seed, "elapsed", s.Elapsed)
	}
	return s, nil
}

func checkCase(a, b []rune) *FailureError {
	fail := func(prop, format string, args ...any) *FailureError {
		return &FailureError{Property: prop, A: a, B: b, Detail: fmt.Sprintf(format, args...)}
	}

	ea, err := bocu1.Encode(a)
	if err != nil {
		return fail("encode", "%v", err)
	}
	eb, err := bocu1.Encode(b)
	if err != nil {
		return fail("encode", "%v", err)
	}

	for _, in := range []struct {
		cps []rune
		enc []byte
	}{{a, ea}, {b, eb}} {
		for _, mode := range []bocu1.Mode{bocu1.Strict, bocu1.Lenient} {
			got, err := bocu1.Decode(in.enc, mode)
			if err != nil {
				return fail("round trip", "%s decode of %x: %v", mode, in.enc, err)
			}
			if !slices.Equal(got, in.cps) {
				return fail("round trip", "%s decode of %x gave %U", mode, in.enc, got)
			}
		}
	}

	if want, got := slices.Compare(a, b), bytes.Compare(ea, eb); want != got {
		return fail("byte order", "code points compare %d, bytes %d (%x vs %x)", want, got, ea, eb)
	}

	ka, errA := bocu1.NewKey(ea, bocu1.Width128)
	kb, errB := bocu1.NewKey(eb, bocu1.Width128)
	if errA == nil && errB == nil {
		if want, got := slices.Compare(a, b), ka.Compare(kb); want != got {
			return fail("packed order", "code points compare %d, keys %d (%s vs %s)", want, got, ka.Word, kb.Word)
		}
	}

	joined := append(append(slices.Clone(a), '\n'), b...)
	ej, err := bocu1.Encode(joined)
	if err != nil {
		return fail("encode", "%v", err)
	}
	if !bytes.HasSuffix(ej, append([]byte{'\n'}, eb...)) {
		return fail("self-sync", "encoding after LF is %x, want %x", ej[len(ea):], eb)
	}
	return nil
}
