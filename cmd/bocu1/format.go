// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/bocukit/bocu1/internal/config"
)

// formatBytes renders encoded bytes in the given output format.
func formatBytes(b []byte, f config.OutputFormat) (string, error) {
	switch f {
	case config.OutputHex:
		return hex.EncodeToString(b), nil
	case config.OutputSpaced:
		parts := make([]string, len(b))
		for i, c := range b {
			parts[i] = fmt.Sprintf("%02x", c)
		}
		return strings.Join(parts, " "), nil
	case config.OutputBase64:
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", f.Validate()
	}
}

// parseHexBytes parses hex input that may be spaced, colon separated or
// 0x prefixed, as printed by formatBytes.
func parseHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ':' || r == '_' {
			return -1
		}
		return r
	}, s)
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex input %q has an odd number of digits", s)
	}
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("hex input: %w", err)
	}
	return b, nil
}

// parseCodePoints parses a list of code points separated by spaces or
// commas. Each item is U+XXXX, 0xXX or decimal. Values are not range
// checked, so the codec can report them.
func parseCodePoints(s string) ([]rune, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	cps := make([]rune, 0, len(fields))
	for _, f := range fields {
		var (
			v   int64
			err error
		)
		switch {
		case strings.HasPrefix(f, "U+"), strings.HasPrefix(f, "u+"):
			v, err = strconv.ParseInt(f[2:], 16, 32)
		case strings.HasPrefix(f, "0x"), strings.HasPrefix(f, "0X"):
			v, err = strconv.ParseInt(f[2:], 16, 32)
		default:
			v, err = strconv.ParseInt(f, 10, 32)
		}
		if err != nil {
			return nil, fmt.Errorf("code point %q: %w", f, err)
		}
		cps = append(cps, rune(v))
	}
	return cps, nil
}

// formatCodePoints renders cps as space separated U+XXXX values.
func formatCodePoints(cps []rune) string {
	parts := make([]string, len(cps))
	for i, cp := range cps {
		parts[i] = fmt.Sprintf("U+%04X", cp)
	}
	return strings.Join(parts, " ")
}

// readInput returns args joined by spaces, or all of r when args is empty.
// A single trailing newline from r is dropped unless keepNewline is set.
func readInput(r io.Reader, args []string, keepNewline bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := string(data)
	if !keepNewline {
		s = strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
	}
	return s, nil
}
