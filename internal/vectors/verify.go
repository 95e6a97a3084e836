// SPDX-License-Identifier: MPL-2.0

package vectors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

// ErrMismatch is returned by Report.Err when a vector failed.
var ErrMismatch = errors.New("vector mismatch")

type (
	// Options configures Verify.
	Options struct {
		// Workers bounds concurrent vector checks. Zero means GOMAXPROCS.
		Workers int
		// Logger receives one debug line per vector. Nil disables logging.
		Logger *log.Logger
	}

	// Result is the outcome of one vector.
	Result struct {
		Name string
		// Failures lists every check that did not hold. Empty means pass.
		Failures []string
	}

	// Report is the outcome of a corpus run, in corpus order.
	Report struct {
		Source  string
		Results []Result
		Elapsed time.Duration
	}

	// MismatchError lists the names of failed vectors.
	MismatchError struct {
		Failed []string
	}
)

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d vector(s) failed: %v", len(e.Failed), e.Failed)
}

// Unwrap returns ErrMismatch for errors.Is() compatibility.
func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Passed reports whether the vector passed.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// Counts returns the number of passed and failed vectors.
func (r *Report) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Err returns a *MismatchError when any vector failed.
func (r *Report) Err() error {
	var failed []string
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res.Name)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &MismatchError{Failed: failed}
}

// Verify checks every vector of c. Vectors run concurrently; the report
// keeps corpus order. The returned error is non-nil only when ctx ends
// first; vector failures are in the report.
func Verify(ctx context.Context, c *Corpus, opts Options) (*Report, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(c.Vectors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range c.Vectors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v := &c.Vectors[i]
			results[i] = Result{Name: v.Name, Failures: Check(v)}
			if opts.Logger != nil {
				if results[i].Passed() {
					opts.Logger.Debug("vector passed", "name", v.Name)
				} else {
					opts.Logger.Debug("vector failed", "name", v.Name, "failures", len(results[i].Failures))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verify %s: %w", c.Source, err)
	}
	return &Report{Source: c.Source, Results: results, Elapsed: time.Since(start)}, nil
}

// Check runs the codec on v and returns a description of every check that
// did not hold.
func Check(v *Vector) []string {
	var fails []string
	fail := func(format string, args ...any) {
		fails = append(fails, fmt.Sprintf(format, args...))
	}

	input := v.Input()
	want, err := v.ExpectedBytes()
	if err != nil {
		return []string{fmt.Sprintf("bytes: %v", err)}
	}

	switch {
	case v.EncodeError != "":
		if _, err := bocu1.Encode(input); !errors.Is(err, v.EncodeError.Sentinel()) {
			fail("encode: got error %v, want %s", err, v.EncodeError)
		}
		return fails

	case v.DecodeError != "":
		if _, err := bocu1.Decode(want, bocu1.Strict); !errors.Is(err, v.DecodeError.Sentinel()) {
			fail("strict decode: got error %v, want %s", err, v.DecodeError)
		}
		if input != nil && v.DecodeMode() != bocu1.Strict {
			got, err := bocu1.Decode(want, v.DecodeMode())
			if err != nil {
				fail("%s decode: %v", v.DecodeMode(), err)
			} else if !slices.Equal(got, input) {
				fail("%s decode: got %U, want %U", v.DecodeMode(), got, input)
			}
		}
		return fails
	}

	got, err := bocu1.Encode(input)
	switch {
	case err != nil:
		fail("encode: %v", err)
	case !bytes.Equal(got, want):
		fail("encode: got %x, want %x", got, want)
	}

	dec, err := bocu1.Decode(want, v.DecodeMode())
	switch {
	case err != nil:
		fail("decode: %v", err)
	case !slices.Equal(dec, input):
		fail("decode: got %U, want %U", dec, input)
	}

	checkPacked := func(word string, w bocu1.Width) {
		if word == "" {
			return
		}
		wantWord, _ := bocu1.ParseUint128(word)
		gotWord, err := bocu1.Pack(want, w)
		if err != nil {
			fail("pack%s: %v", w, err)
			return
		}
		if gotWord != wantWord {
			fail("pack%s: got %s, want %s", w, gotWord, wantWord)
		}
		back, err := bocu1.Unpack(wantWord, w, len(want))
		if err != nil {
			fail("unpack%s: %v", w, err)
		} else if !bytes.Equal(back, want) {
			fail("unpack%s: got %x, want %x", w, back, want)
		}
	}
	checkPacked(v.Packed64, bocu1.Width64)
	checkPacked(v.Packed128, bocu1.Width128)
	return fails
}
