// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bocukit/bocu1/internal/config"
	"github.com/bocukit/bocu1/internal/issue"
	"github.com/bocukit/bocu1/internal/testutil"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

// staticConfig is a ConfigProvider returning a fixed configuration.
type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.cfg, s.path, nil
}

type result struct {
	stdout, stderr string
	err            error
}

// run executes the command tree with args. A nil cfg means defaults.
func run(t *testing.T, cfg *config.Config, stdin string, args ...string) result {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestCommands(t *testing.T) {
	t.Parallel()

	lenient := config.DefaultConfig()
	lenient.Decode.Mode = "lenient"
	spaced := config.DefaultConfig()
	spaced.Output.Format = config.OutputSpaced
	wide := config.DefaultConfig()
	wide.Pack.Width = bocu1.Width128

	tests := []struct {
		name  string
		cfg   *config.Config
		stdin string
		args  []string
		want  string
	}{
		{name: "encode argument", args: []string{"encode", "hello"}, want: "b8b5bcbcbf\n"},
		{name: "encode joins arguments", args: []string{"encode", "a", "a"}, want: "b120b1\n"},
		{name: "encode stdin drops newline", stdin: "hello\n", args: []string{"encode"}, want: "b8b5bcbcbf\n"},
		{name: "encode stdin keeps newline", stdin: "hello\n", args: []string{"encode", "--keep-newline"}, want: "b8b5bcbcbf0a\n"},
		{name: "encode spaced flag", args: []string{"encode", "-f", "spaced", "éé"}, want: "d0 76 b9\n"},
		{name: "encode spaced config", cfg: spaced, args: []string{"encode", "éé"}, want: "d0 76 b9\n"},
		{name: "encode base64", args: []string{"encode", "--format", "base64", "hello"}, want: "uLW8vL8=\n"},
		{name: "encode code points", args: []string{"encode", "--code-points", "U+0068, 0x65 108 u+006C U+006F"}, want: "b8b5bcbcbf\n"},
		{name: "decode", args: []string{"decode", "b8b5bcbcbf"}, want: "hello\n"},
		{name: "decode spaced hex", args: []string{"decode", "d0 76 b9"}, want: "éé\n"},
		{name: "decode stdin", stdin: "d0:76:b9\n", args: []string{"decode"}, want: "éé\n"},
		{name: "decode code points", args: []string{"decode", "--code-points", "b8b5"}, want: "U+0068 U+0065\n"},
		{name: "decode lenient flag", args: []string{"decode", "--mode", "lenient", "b1ffd076"}, want: "aé\n"},
		{name: "decode lenient config", cfg: lenient, args: []string{"decode", "b1ffd076"}, want: "aé\n"},
		{name: "pack", args: []string{"pack", "hello"}, want: "0xb8b5bcbcbf000000 5\n"},
		{name: "pack empty", args: []string{"pack", "--code-points", " "}, want: "0x0000000000000000 0\n"},
		{name: "pack 128", args: []string{"pack", "-w", "128", "εφαρμογών"}, want: "0xd3699681918c8f839e8d000000000000 10\n"},
		{name: "pack 128 config", cfg: wide, args: []string{"pack", "εφαρμογών"}, want: "0xd3699681918c8f839e8d000000000000 10\n"},
		{name: "pack hex", args: []string{"pack", "--hex", "b8 b5"}, want: "0xb8b5000000000000 2\n"},
		{name: "unpack", args: []string{"unpack", "0xb8b5bcbcbf000000", "--len", "5"}, want: "hello\n"},
		{name: "unpack 128", args: []string{"unpack", "-w", "128", "0xd3699681918c8f839e8d000000000000", "-l", "10"}, want: "εφαρμογών\n"},
		{name: "unpack bytes", args: []string{"unpack", "0xb8b5000000000000", "--len", "2", "--bytes", "-f", "spaced"}, want: "b8 b5\n"},
		{name: "unpack trailing nul", args: []string{"unpack", "0xb100000000000000", "--len", "2", "--bytes"}, want: "b100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.cfg, tt.stdin, tt.args...)
			if res.err != nil {
				t.Fatalf("%v: error = %v\nstderr: %s", tt.args, res.err, res.stderr)
			}
			if res.stdout != tt.want {
				t.Errorf("%v: stdout = %q, want %q", tt.args, res.stdout, tt.want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantIssue issue.Id
		wantIs    error
	}{
		{name: "surrogate code point", args: []string{"encode", "--code-points", "U+D800"}, wantIssue: issue.InvalidInputId, wantIs: bocu1.ErrInvalidCodePoint},
		{name: "invalid utf-8", stdin: "a\xffb", args: []string{"encode"}, wantIssue: issue.InvalidInputId, wantIs: bocu1.ErrInvalidCodePoint},
		{name: "bad code point syntax", args: []string{"encode", "--code-points", "U+ZZ"}, wantIssue: issue.InvalidInputId},
		{name: "bad hex", args: []string{"decode", "b8b"}, wantIssue: issue.MalformedEncodingId},
		{name: "truncated", args: []string{"decode", "fe19b4"}, wantIssue: issue.MalformedEncodingId, wantIs: bocu1.ErrTruncatedSequence},
		{name: "invalid trail byte", args: []string{"decode", "d007"}, wantIssue: issue.MalformedEncodingId, wantIs: bocu1.ErrInvalidByte},
		{name: "reset byte strict", args: []string{"decode", "ff"}, wantIssue: issue.NonCanonicalEncodingId, wantIs: bocu1.ErrNonCanonicalEncoding},
		{name: "pack overflow", args: []string{"pack", "εφαρμογών"}, wantIssue: issue.PackOverflowId, wantIs: bocu1.ErrPackOverflow},
		{name: "unpack padding", args: []string{"unpack", "0xb8b5", "--len", "2"}, wantIssue: issue.InvalidPackedWordId, wantIs: bocu1.ErrInvalidPadding},
		{name: "unpack bad word", args: []string{"unpack", "0xzz", "--len", "1"}, wantIssue: issue.InvalidPackedWordId},
		{name: "missing corpus", args: []string{"verify", "does-not-exist.toml"}, wantIssue: issue.CorpusLoadFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, nil, tt.stdin, tt.args...)
			if res.err == nil {
				t.Fatalf("%v: succeeded with %q, want error", tt.args, res.stdout)
			}
			if tt.wantIs != nil && !errors.Is(res.err, tt.wantIs) {
				t.Errorf("%v: error = %v, want %v", tt.args, res.err, tt.wantIs)
			}
			if tt.wantIssue == 0 {
				return
			}
			var ae *issue.ActionableError
			if !errors.As(res.err, &ae) {
				t.Fatalf("%v: error %T is not actionable", tt.args, res.err)
			}
			if ae.Issue != tt.wantIssue {
				t.Errorf("%v: issue = %d, want %d", tt.args, ae.Issue, tt.wantIssue)
			}
		})
	}
}

func TestDecodeStrictSuggestsLenient(t *testing.T) {
	t.Parallel()

	res := run(t, nil, "", "decode", "ff")
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) {
		t.Fatalf("error = %v, want ActionableError", res.err)
	}
	if !strings.Contains(ae.Format(false), "--mode lenient") {
		t.Errorf("Format() = %q, want a lenient mode suggestion", ae.Format(false))
	}
}

func TestInvalidFlagValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args   []string
		wantIs error
	}{
		{args: []string{"encode", "-f", "octal", "a"}, wantIs: config.ErrInvalidOutputFormat},
		{args: []string{"decode", "-m", "loose", "b1"}, wantIs: bocu1.ErrInvalidMode},
		{args: []string{"pack", "-w", "32", "a"}, wantIs: bocu1.ErrInvalidWidth},
		{args: []string{"--log-level", "trace", "encode", "a"}, wantIs: config.ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		res := run(t, nil, "", tt.args...)
		if !errors.Is(res.err, tt.wantIs) {
			t.Errorf("%v: error = %v, want %v", tt.args, res.err, tt.wantIs)
		}
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	res := run(t, nil, "", "inspect", "aé")
	if res.err != nil {
		t.Fatalf("inspect error = %v", res.err)
	}
	for _, want := range []string{
		"LATIN SMALL LETTER A",
		"LATIN SMALL LETTER E WITH ACUTE",
		"U+0040",
		"+33",
		"+169",
		"d0 76",
		"2 code points, 3 bytes",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, res.stdout)
		}
	}

	res = run(t, nil, "", "inspect", "--code-points", "U+000A")
	if res.err != nil {
		t.Fatalf("inspect error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "literal") {
		t.Errorf("inspect output does not mark a literal:\n%s", res.stdout)
	}
}

func TestVerifyBuiltin(t *testing.T) {
	t.Parallel()

	res := run(t, nil, "", "verify")
	if res.err != nil {
		t.Fatalf("verify error = %v\n%s", res.err, res.stdout)
	}
	if !strings.Contains(res.stdout, "builtin: 25 vectors passed") {
		t.Errorf("verify output = %q", res.stdout)
	}

	res = run(t, nil, "", "verify", "-v", "-j", "2")
	if res.err != nil {
		t.Fatalf("verify -v error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "english") || !strings.Contains(res.stdout, "pass") {
		t.Errorf("verbose verify does not list vectors:\n%s", res.stdout)
	}
}

func TestVerifyMismatch(t *testing.T) {
	t.Parallel()

	path := testutil.MustWriteFile(t, t.TempDir(), "bad.toml", `description = "wrong bytes"

[[vectors]]
name = "hello"
text = "hello"
bytes = "b8b5bcbcbe"
`)

	res := run(t, nil, "", "verify", path)
	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != ExitMismatch {
		t.Fatalf("verify error = %v, want exit code %d", res.err, ExitMismatch)
	}
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) || ae.Issue != issue.VectorMismatchId {
		t.Errorf("verify error = %v, want vector-mismatch issue", res.err)
	}
	if !strings.Contains(res.stdout, "FAIL") || !strings.Contains(res.stdout, "0 passed, 1 failed") {
		t.Errorf("verify output = %q", res.stdout)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	res := run(t, nil, "", "check", "--count", "500", "--seed", "3", "-j", "2")
	if res.err != nil {
		t.Fatalf("check error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "500 cases passed (seed 3)") {
		t.Errorf("check output = %q", res.stdout)
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Decode.Mode = "lenient"

	res := run(t, cfg, "", "config", "show")
	if res.err != nil {
		t.Fatalf("config show error = %v", res.err)
	}
	for _, want := range []string{"decode.mode", "lenient", "(using defaults)", "pack.width", "64"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show output missing %q:\n%s", want, res.stdout)
		}
	}

	res = run(t, cfg, "", "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump error = %v", res.err)
	}
	if !strings.Contains(res.stdout, `decode: mode: "lenient"`) {
		t.Errorf("config dump = %q", res.stdout)
	}

	res = run(t, nil, "", "config", "schema")
	if res.err != nil || !strings.Contains(res.stdout, "#Config") {
		t.Errorf("config schema = %q, %v", res.stdout, res.err)
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	res := run(t, nil, "", "config", "init", "--path", path)
	if res.err != nil {
		t.Fatalf("config init error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Created default configuration") {
		t.Errorf("config init output = %q", res.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config file = %q", data)
	}

	res = run(t, nil, "", "config", "init", "--path", path)
	if res.err != nil || !strings.Contains(res.stdout, "already exists") {
		t.Errorf("second init = %q, %v", res.stdout, res.err)
	}
	res = run(t, nil, "", "config", "init", "--path", path, "--force")
	if res.err != nil || !strings.Contains(res.stdout, "Created") {
		t.Errorf("forced init = %q, %v", res.stdout, res.err)
	}
}

func TestBrokenDefaultConfigFallsBack(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{err: errors.New("bad config")},
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs([]string{"encode", "hello"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout.String() != "b8b5bcbcbf\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "bad config") {
		t.Errorf("stderr = %q, want config warning", stderr.String())
	}

	app = NewApp(Dependencies{
		Config: staticConfig{err: errors.New("bad config")},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root = NewRootCommand(app)
	root.SetArgs([]string{"--config", "explicit.cue", "encode", "hello"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if err := root.Execute(); err == nil {
		t.Error("Execute() with a broken explicit config succeeded")
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	res := run(t, nil, "", "explain")
	if res.err != nil {
		t.Fatalf("explain error = %v", res.err)
	}
	for _, is := range issue.Values() {
		if !strings.Contains(res.stdout, is.Slug()) {
			t.Errorf("explain list missing %q", is.Slug())
		}
	}
	if !strings.Contains(res.stdout, "Packed word does not match its length") {
		t.Errorf("explain list missing titles:\n%s", res.stdout)
	}

	res = run(t, nil, "", "explain", "non-canonical")
	if res.err != nil {
		t.Fatalf("explain non-canonical error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "canonical") {
		t.Errorf("explain output = %q", res.stdout)
	}

	if res := run(t, nil, "", "explain", "nope"); res.err == nil {
		t.Error("explain nope succeeded")
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().
		WithOperation("decode input").
		Wrap(&bocu1.TruncatedSequenceError{Offset: 0, Need: 4, Have: 3}).
		BuildError()

	app := NewApp(Dependencies{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	var w bytes.Buffer
	writeError(&w, app, &ExitError{Code: ExitFailure, Err: err})
	out := w.String()
	if !strings.Contains(out, "failed to decode input") || !strings.Contains(out, "•") {
		t.Errorf("writeError() = %q", out)
	}
	if strings.Contains(out, "Error chain") {
		t.Errorf("writeError() printed the chain without verbose: %q", out)
	}

	app.verbose = true
	w.Reset()
	writeError(&w, app, err)
	if !strings.Contains(w.String(), "Error chain") {
		t.Errorf("verbose writeError() = %q", w.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	e := &ExitError{Code: ExitMismatch, Err: inner}
	if e.Error() != "boom" || !errors.Is(e, inner) {
		t.Errorf("ExitError = %q", e.Error())
	}
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
}
