// SPDX-License-Identifier: MPL-2.0

package vectors

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/bocukit/bocu1/internal/cueutil"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

const (
	// FormatCUE is a corpus written in CUE.
	FormatCUE Format = "cue"
	// FormatTOML is a corpus written in TOML.
	FormatTOML Format = "toml"

	ErrorInvalidCodePoint     ErrorKind = "invalid_code_point"
	ErrorTruncatedSequence    ErrorKind = "truncated_sequence"
	ErrorInvalidByte          ErrorKind = "invalid_byte"
	ErrorNonCanonicalEncoding ErrorKind = "non_canonical_encoding"
)

var (
	//go:embed corpus_schema.cue
	corpusSchema []byte
	//go:embed builtin.cue
	builtinCUE []byte
	//go:embed edge.toml
	builtinTOML []byte

	// ErrUnknownFormat is returned for corpus files that are neither CUE nor TOML.
	ErrUnknownFormat = errors.New("unknown corpus format")
	// ErrInvalidVector is the sentinel error wrapped by InvalidVectorError.
	ErrInvalidVector = errors.New("invalid vector")
)

type (
	// Format is a corpus file format.
	Format string

	// ErrorKind names a codec error a vector expects.
	ErrorKind string

	// Corpus is a named list of vectors.
	Corpus struct {
		Description string   `json:"description,omitempty" toml:"description"`
		Vectors     []Vector `json:"vectors" toml:"vectors"`
		// Source is the file the corpus was read from.
		Source string `json:"-" toml:"-"`
	}

	// Vector is one test case.
	//
	// With EncodeError set, encoding the input must fail with that kind.
	// With DecodeError set, decoding Bytes in strict mode must fail with that
	// kind and, when an input is given, decoding in lenient Mode must yield it.
	// Otherwise the input must encode to Bytes and Bytes must decode back.
	Vector struct {
		Name        string    `json:"name" toml:"name"`
		Text        *string   `json:"text,omitempty" toml:"text"`
		CodePoints  []rune    `json:"code_points,omitempty" toml:"code_points"`
		Bytes       *string   `json:"bytes,omitempty" toml:"bytes"`
		Packed64    string    `json:"packed64,omitempty" toml:"packed64"`
		Packed128   string    `json:"packed128,omitempty" toml:"packed128"`
		Mode        string    `json:"mode,omitempty" toml:"mode"`
		EncodeError ErrorKind `json:"encode_error,omitempty" toml:"encode_error"`
		DecodeError ErrorKind `json:"decode_error,omitempty" toml:"decode_error"`
	}

	// InvalidVectorError reports a vector that cannot be checked.
	InvalidVectorError struct {
		Name   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidVectorError) Error() string {
	return fmt.Sprintf("vector %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidVector for errors.Is() compatibility.
func (e *InvalidVectorError) Unwrap() error { return ErrInvalidVector }

// Sentinel returns the codec error k stands for.
func (k ErrorKind) Sentinel() error {
	switch k {
	case ErrorInvalidCodePoint:
		return bocu1.ErrInvalidCodePoint
	case ErrorTruncatedSequence:
		return bocu1.ErrTruncatedSequence
	case ErrorInvalidByte:
		return bocu1.ErrInvalidByte
	case ErrorNonCanonicalEncoding:
		return bocu1.ErrNonCanonicalEncoding
	}
	return nil
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: %w (want .cue or .toml)", path, ErrUnknownFormat)
}

// Parse decodes a corpus. name labels the corpus in errors.
func Parse(data []byte, format Format, name string) (*Corpus, error) {
	var c Corpus
	switch format {
	case FormatCUE:
		res, err := cueutil.ParseAndDecode[Corpus](corpusSchema, data, "#Corpus", cueutil.WithFilename(name))
		if err != nil {
			return nil, err
		}
		c = *res.Value
	case FormatTOML:
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, name); err != nil {
			return nil, err
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			var de *toml.DecodeError
			if errors.As(err, &de) {
				row, col := de.Position()
				return nil, fmt.Errorf("%s:%d:%d: %s", name, row, col, de.Error())
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w %q", name, ErrUnknownFormat, format)
	}

	c.Source = name
	for i := range c.Vectors {
		if err := c.Vectors[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: vectors[%d]: %w", name, i, err)
		}
	}
	return &c, nil
}

// Builtin returns the compiled-in reference corpus.
func Builtin() *Corpus {
	ref, err := Parse(builtinCUE, FormatCUE, "builtin.cue")
	if err != nil {
		panic(fmt.Sprintf("builtin corpus: %v", err))
	}
	edge, err := Parse(builtinTOML, FormatTOML, "edge.toml")
	if err != nil {
		panic(fmt.Sprintf("builtin corpus: %v", err))
	}
	return &Corpus{
		Description: ref.Description + "; " + edge.Description,
		Vectors:     append(ref.Vectors, edge.Vectors...),
		Source:      "builtin",
	}
}

// Validate checks that v is well-formed. It does not run the codec.
func (v *Vector) Validate() error {
	invalid := func(format string, args ...any) error {
		return &InvalidVectorError{Name: v.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(v.Name) == "" {
		return invalid("name is empty")
	}
	hasInput := v.Text != nil || v.CodePoints != nil
	if v.Text != nil && v.CodePoints != nil {
		return invalid("text and code_points are mutually exclusive")
	}
	for _, k := range []ErrorKind{v.EncodeError, v.DecodeError} {
		if k != "" && k.Sentinel() == nil {
			return invalid("unknown error kind %q", k)
		}
	}
	if v.EncodeError != "" && v.DecodeError != "" {
		return invalid("encode_error and decode_error are mutually exclusive")
	}

	switch {
	case v.EncodeError != "":
		if !hasInput {
			return invalid("encode_error needs text or code_points")
		}
		if v.Bytes != nil {
			return invalid("encode_error vectors have no bytes")
		}
	case v.DecodeError != "":
		if v.Bytes == nil {
			return invalid("decode_error needs bytes")
		}
		if hasInput && v.DecodeMode() != bocu1.Lenient {
			return invalid("decode_error with an input needs mode %q", bocu1.Lenient)
		}
	default:
		if !hasInput || v.Bytes == nil {
			return invalid("needs an input and bytes")
		}
	}

	if v.Bytes != nil {
		if _, err := v.ExpectedBytes(); err != nil {
			return invalid("bytes: %v", err)
		}
	}
	if v.Mode != "" {
		if _, err := bocu1.ParseMode(v.Mode); err != nil {
			return invalid("%v", err)
		}
	}
	for _, w := range []string{v.Packed64, v.Packed128} {
		if w == "" {
			continue
		}
		if _, err := bocu1.ParseUint128(w); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

// Input returns the vector input as code points.
func (v *Vector) Input() []rune {
	if v.Text != nil {
		return []rune(*v.Text)
	}
	return v.CodePoints
}

// ExpectedBytes returns Bytes decoded from hex.
func (v *Vector) ExpectedBytes() ([]byte, error) {
	if v.Bytes == nil {
		return nil, nil
	}
	return hex.DecodeString(strings.ReplaceAll(*v.Bytes, " ", ""))
}

// DecodeMode returns Mode parsed, Strict when empty.
func (v *Vector) DecodeMode() bocu1.Mode {
	m, _ := bocu1.ParseMode(v.Mode)
	return m
}
