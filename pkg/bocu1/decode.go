// SPDX-License-Identifier: MPL-2.0

package bocu1

import (
	"fmt"
	"strings"
)

const (
	// Strict rejects input the encoder would never produce.
	Strict Mode = iota
	// Lenient accepts the reset byte and multi-byte forms of self-encoded
	// code points, decoding them like the reference decoder does.
	Lenient
)

// Mode selects how Decode treats non-canonical input.
type Mode int

// InvalidModeError is returned when a Mode value is not recognized.
type InvalidModeError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid decode mode %q (valid: strict, lenient)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// ParseMode parses "strict" or "lenient", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, &InvalidModeError{Value: s}
	}
}

// Validate returns an error if m is not Strict or Lenient.
func (m Mode) Validate() error {
	switch m {
	case Strict, Lenient:
		return nil
	default:
		return &InvalidModeError{Value: fmt.Sprint(int(m))}
	}
}

// String returns "strict" or "lenient".
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Decode returns the code points encoded in b. Decoding starts from the
// baseline state; any error ends the call and no partial result is returned.
func Decode(b []byte, mode Mode) ([]rune, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	cps := make([]rune, 0, len(b))
	s := NewState()
	for off := 0; off < len(b); {
		c := b[off]
		switch {
		case c == ResetByte:
			if mode == Strict {
				return nil, &NonCanonicalEncodingError{Offset: off, Reason: "state reset byte 0xff"}
			}
			s = s.Reset()
			off++
		case c < literalLimit:
			cp := rune(c)
			cps = append(cps, cp)
			s = s.OnControl(cp)
			off++
		default:
			ds, err := readDigits(b, off)
			if err != nil {
				return nil, err
			}
			delta := DecodeDigits(ds)
			cp, err := s.Apply(delta)
			if err != nil {
				return nil, &InvalidCodePointError{Index: len(cps), Offset: off, Value: s.Anchor() + rune(delta)}
			}
			if cp < literalLimit && mode == Strict {
				return nil, &NonCanonicalEncodingError{
					Offset: off,
					Reason: fmt.Sprintf("%d-byte code for U+%04X, which is written as a single literal byte", ds.Len(), cp),
				}
			}
			cps = append(cps, cp)
			s = s.Advance(cp)
			off += ds.Len()
		}
	}
	return cps, nil
}

// DecodeString decodes b into a UTF-8 string.
func DecodeString(b []byte, mode Mode) (string, error) {
	cps, err := Decode(b, mode)
	if err != nil {
		return "", err
	}
	return string(cps), nil
}
