// SPDX-License-Identifier: MPL-2.0

package vectors

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bocukit/bocu1/internal/cueutil"
)

func TestBuiltinLoads(t *testing.T) {
	t.Parallel()

	c := Builtin()
	if len(c.Vectors) < 20 {
		t.Fatalf("Builtin() has %d vectors", len(c.Vectors))
	}
	seen := make(map[string]bool)
	for _, v := range c.Vectors {
		if seen[v.Name] {
			t.Errorf("duplicate vector name %q", v.Name)
		}
		seen[v.Name] = true
	}
	for _, name := range []string{"english", "greek", "multi-script", "nul", "reset byte"} {
		if !seen[name] {
			t.Errorf("Builtin() lacks %q", name)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file  string
		count int
	}{
		{file: "mini.toml", count: 2},
		{file: "mini.cue", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			c, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(c.Vectors) != tt.count {
				t.Errorf("Load() has %d vectors, want %d", len(c.Vectors), tt.count)
			}
			if c.Source != filepath.Join("testdata", tt.file) {
				t.Errorf("Source = %q", c.Source)
			}
			if c.Description == "" {
				t.Error("Description is empty")
			}
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	t.Parallel()

	if _, err := Load("vectors.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load() error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr string
	}{
		{
			name:    "cue bad hex",
			format:  FormatCUE,
			data:    `vectors: [{name: "x", text: "x", bytes: "zz"}]`,
			wantErr: "bytes",
		},
		{
			name:    "cue unknown field",
			format:  FormatCUE,
			data:    `vectors: [{name: "x", text: "x", bytes: "b1", extra: 1}]`,
			wantErr: "extra",
		},
		{
			name:    "cue bad error kind",
			format:  FormatCUE,
			data:    `vectors: [{name: "x", bytes: "d0", decode_error: "oops"}]`,
			wantErr: "decode_error",
		},
		{
			name:    "toml unknown field",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ncolour = \"red\"\n",
			wantErr: "in.toml",
		},
		{
			name:    "toml syntax",
			format:  FormatTOML,
			data:    "[[vectors]\nname = ",
			wantErr: "in.toml:1",
		},
		{
			name:    "both inputs",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ntext = \"a\"\ncode_points = [97]\nbytes = \"b1\"\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "decode error input without mode",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ntext = \"a\"\nbytes = \"b1ffb1\"\ndecode_error = \"non_canonical_encoding\"\n",
			wantErr: "needs mode",
		},
		{
			name:    "decode error input in strict mode",
			format:  FormatCUE,
			data:    `vectors: [{name: "x", text: "a", bytes: "b1ff", mode: "strict", decode_error: "non_canonical_encoding"}]`,
			wantErr: "needs mode",
		},
		{
			name:    "no bytes",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ntext = \"a\"\n",
			wantErr: "needs an input and bytes",
		},
		{
			name:    "odd hex in toml",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ntext = \"a\"\nbytes = \"b\"\n",
			wantErr: "bytes",
		},
		{
			name:    "encode error with bytes",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ncode_points = [0xD800]\nbytes = \"00\"\nencode_error = \"invalid_code_point\"\n",
			wantErr: "no bytes",
		},
		{
			name:    "bad word",
			format:  FormatTOML,
			data:    "[[vectors]]\nname = \"x\"\ntext = \"a\"\nbytes = \"b1\"\npacked64 = \"0xqq\"\n",
			wantErr: "parse word",
		},
		{
			name:    "unknown format",
			format:  "yaml",
			data:    "",
			wantErr: "unknown corpus format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name := "in." + string(tt.format)
			_, err := Parse([]byte(tt.data), tt.format, name)
			if err == nil {
				t.Fatal("Parse() accepted invalid input")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseCUEErrorsAreValidationErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`vectors: [{name: ""}]`), FormatCUE, "c.cue")
	var ve *cueutil.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Parse() error = %v, want ValidationError", err)
	}
}

func TestInvalidVectorError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[[vectors]]\nname = \"x\"\nbytes = \"00\"\nmode = \"fast\"\ndecode_error = \"invalid_byte\"\n"), FormatTOML, "m.toml")
	var ive *InvalidVectorError
	if !errors.As(err, &ive) || ive.Name != "x" {
		t.Fatalf("Parse() error = %v, want InvalidVectorError for x", err)
	}
	if !errors.Is(err, ErrInvalidVector) {
		t.Error("error does not wrap ErrInvalidVector")
	}
}
