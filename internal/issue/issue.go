// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bocukit/bocu1/internal/cueutil"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

const (
	InvalidInputId Id = iota + 1
	MalformedEncodingId
	NonCanonicalEncodingId
	PackOverflowId
	InvalidPackedWordId
	FileNotFoundId
	PermissionDeniedId
	ConfigLoadFailedId
	CorpusLoadFailedId
	VectorMismatchId
	SelfCheckFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is guidance text in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry: a Markdown explanation, the short
	// suggestions an ActionableError inherits, and reference links.
	Issue struct {
		id          Id
		slug        string
		mdMsg       MarkdownMsg
		suggestions []string
		docLinks    []HttpLink
	}
)

func (i *Issue) Id() Id { return i.id }

// Slug is the short name used on the command line, e.g. "pack-overflow".
func (i *Issue) Slug() string { return i.slug }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) Suggestions() []string { return slices.Clone(i.suggestions) }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Render renders the entry for a terminal. stylePath is a glamour style
// name such as "dark", "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	unicodeTR = HttpLink("https://www.unicode.org/notes/tn6/")

	issues = map[Id]*Issue{
		InvalidInputId: {
			id:   InvalidInputId,
			slug: "invalid-input",
			mdMsg: `
# Input is not a sequence of Unicode scalar values

Only code points U+0000..U+D7FF and U+E000..U+10FFFF can be encoded.
Surrogates and values above U+10FFFF are rejected, and so are bytes that
are not valid UTF-8 in text input.

## Things you can try
- Check the input file encoding:
~~~
$ file input.txt
~~~
- Pass explicit code points instead:
~~~
$ bocu1 encode --code-points "U+0068 U+00E9"
~~~`,
			suggestions: []string{
				"Make sure the input is valid UTF-8",
				"Use --code-points to pass scalar values explicitly",
			},
			docLinks: []HttpLink{unicodeTR},
		},
		MalformedEncodingId: {
			id:   MalformedEncodingId,
			slug: "malformed-encoding",
			mdMsg: `
# Input is not well-formed BOCU-1

The byte stream ends inside a multi-byte code, or a trail position holds one
of the bytes BOCU-1 never uses there (00, 07..0F, 1A, 1B, 20).

## Things you can try
- Check that the hex input was not cut short
- Look at the encoding step by step:
~~~
$ bocu1 inspect "original text"
~~~`,
			suggestions: []string{
				"Check that the input was not truncated or altered",
				"Compare with the output of 'bocu1 encode'",
			},
			docLinks: []HttpLink{unicodeTR},
		},
		NonCanonicalEncodingId: {
			id:   NonCanonicalEncodingId,
			slug: "non-canonical",
			mdMsg: `
# Input is valid BOCU-1 but not canonical

The data contains the state-reset byte FF or a multi-byte code for a
character that is always written as a single byte. An encoder following the
canonical rules never produces either.

## Things you can try
- Decode leniently:
~~~
$ bocu1 decode --mode lenient <hex>
~~~
- Or set it as the default in your config file:
~~~cue
decode: mode: "lenient"
~~~`,
			suggestions: []string{
				"Retry with --mode lenient to accept non-canonical input",
			},
		},
		PackOverflowId: {
			id:   PackOverflowId,
			slug: "pack-overflow",
			mdMsg: `
# Encoded string does not fit in the packed word

A 64-bit word holds 8 encoded bytes and a 128-bit word holds 16. Packing never
truncates.

## Things you can try
- Use the wider word:
~~~
$ bocu1 pack --width 128 "text"
~~~
- Pack a shorter prefix of the string`,
			suggestions: []string{
				"Use --width 128 or a shorter string",
			},
		},
		InvalidPackedWordId: {
			id:   InvalidPackedWordId,
			slug: "invalid-packed-word",
			mdMsg: `
# Packed word does not match its length

Bytes past the given length must be zero, and a 64-bit word cannot have bits
above bit 63. A packed 00 byte looks like padding, so the length has to be
stored next to the word.

## Things you can try
- Pass the length printed by 'bocu1 pack':
~~~
$ bocu1 unpack --len 5 0xb8b5bcbcbf000000
~~~`,
			suggestions: []string{
				"Pass the --len printed by 'bocu1 pack'",
				"Check --width matches the width used when packing",
			},
		},
		FileNotFoundId: {
			id:   FileNotFoundId,
			slug: "file-not-found",
			mdMsg: `
# File not found

The file named on the command line does not exist.

## Things you can try
- Check the path and the current directory`,
			suggestions: []string{"Check the file path"},
		},
		PermissionDeniedId: {
			id:   PermissionDeniedId,
			slug: "permission-denied",
			mdMsg: `
# Permission denied

The file exists but cannot be read or written by the current user.`,
			suggestions: []string{"Check the file permissions"},
		},
		ConfigLoadFailedId: {
			id:   ConfigLoadFailedId,
			slug: "config-load-failed",
			mdMsg: `
# Failed to load configuration

The config file did not match the configuration schema.

## Things you can try
- Print the schema-backed defaults:
~~~
$ bocu1 config dump
~~~
- Recreate the file:
~~~
$ bocu1 config init --force
~~~`,
			suggestions: []string{
				"Run 'bocu1 config dump' to see valid keys and defaults",
				"Use --config to point at another file",
			},
		},
		CorpusLoadFailedId: {
			id:   CorpusLoadFailedId,
			slug: "corpus-load-failed",
			mdMsg: `
# Failed to load test vectors

Corpus files are CUE (*.cue) or TOML (*.toml). Every vector needs a name,
exactly one of text and code_points, and the expected bytes in hex.

## Example
~~~cue
vectors: [{
	name:  "hello"
	text:  "hello"
	bytes: "b8b5bcbcbf"
}]
~~~`,
			suggestions: []string{
				"Check the file extension is .cue or .toml",
				"Run 'bocu1 verify' without arguments to check the built-in corpus",
			},
		},
		VectorMismatchId: {
			id:   VectorMismatchId,
			slug: "vector-mismatch",
			mdMsg: `
# Test vectors did not match

At least one vector encoded, decoded or packed to something other than the
expected value. The report lists each failing vector with what was expected
and what was produced.`,
			suggestions: []string{
				"Re-run with --verbose to list every vector",
				"Use 'bocu1 inspect' on the failing text",
			},
		},
		SelfCheckFailedId: {
			id:   SelfCheckFailedId,
			slug: "self-check-failed",
			mdMsg: `
# Randomized self-check failed

A generated input broke round trip or order preservation. The failure lists
the seed, so the run can be repeated exactly.

## Things you can try
~~~
$ bocu1 check --seed <seed> --workers 1 --verbose
~~~`,
			suggestions: []string{
				"Re-run with the reported --seed to reproduce",
			},
		},
	}
)

// Values returns the catalog ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, is)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Catalog returns a copy of the catalog keyed by Id.
func Catalog() map[Id]*Issue {
	return maps.Clone(issues)
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Lookup returns the entry with the given slug, or nil.
func Lookup(slug string) *Issue {
	for _, is := range issues {
		if is.slug == slug {
			return is
		}
	}
	return nil
}

// Classify returns the catalog entry matching err, or zero.
func Classify(err error) Id {
	var ve *cueutil.ValidationError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, bocu1.ErrInvalidCodePoint):
		return InvalidInputId
	case errors.Is(err, bocu1.ErrTruncatedSequence), errors.Is(err, bocu1.ErrInvalidByte):
		return MalformedEncodingId
	case errors.Is(err, bocu1.ErrNonCanonicalEncoding):
		return NonCanonicalEncodingId
	case errors.Is(err, bocu1.ErrPackOverflow):
		return PackOverflowId
	case errors.Is(err, bocu1.ErrInvalidPadding), errors.Is(err, bocu1.ErrInvalidWidth):
		return InvalidPackedWordId
	case errors.Is(err, fs.ErrNotExist):
		return FileNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return PermissionDeniedId
	case errors.As(err, &ve):
		return ConfigLoadFailedId
	}
	return 0
}
