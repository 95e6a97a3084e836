// SPDX-License-Identifier: MPL-2.0

package bocu1

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCodePoint is the sentinel error wrapped by InvalidCodePointError.
	ErrInvalidCodePoint = errors.New("invalid code point")
	// ErrTruncatedSequence is the sentinel error wrapped by TruncatedSequenceError.
	ErrTruncatedSequence = errors.New("truncated sequence")
	// ErrInvalidByte is the sentinel error wrapped by InvalidByteError.
	ErrInvalidByte = errors.New("invalid byte")
	// ErrNonCanonicalEncoding is the sentinel error wrapped by NonCanonicalEncodingError.
	ErrNonCanonicalEncoding = errors.New("non-canonical encoding")
	// ErrPackOverflow is the sentinel error wrapped by PackOverflowError.
	ErrPackOverflow = errors.New("pack overflow")
	// ErrInvalidWidth is returned when a packed word width is neither 64 nor 128.
	ErrInvalidWidth = errors.New("invalid pack width")
	// ErrInvalidPadding is returned by Unpack when bits below the payload are set.
	ErrInvalidPadding = errors.New("non-zero padding")
	// ErrInvalidMode is returned when a decode Mode value is not recognized.
	ErrInvalidMode = errors.New("invalid decode mode")
)

type (
	// InvalidCodePointError reports a value outside the Unicode scalar range,
	// either in encoder input or as the result of a decoded delta.
	InvalidCodePointError struct {
		// Index is the position of the offending code point in the sequence.
		Index int
		// Offset is the byte offset of the offending input, or -1 when the
		// input was a code point sequence.
		Offset int
		// Value is the offending value.
		Value rune
	}

	// TruncatedSequenceError is returned when the input ends inside a
	// multi-byte code.
	TruncatedSequenceError struct {
		// Offset is the byte offset of the lead byte.
		Offset int
		// Need is the byte length announced by the lead byte.
		Need int
		// Have is the number of bytes left in the input.
		Have int
	}

	// InvalidByteError is returned when a byte matches no lead or trail range.
	InvalidByteError struct {
		Offset int
		Value  byte
	}

	// NonCanonicalEncodingError is returned in Strict mode for input the
	// encoder would never produce.
	NonCanonicalEncodingError struct {
		Offset int
		Reason string
	}

	// PackOverflowError is returned when an encoded sequence does not fit
	// in the requested word width.
	PackOverflowError struct {
		Len   int
		Width Width
	}
)

// Error implements the error interface.
func (e *InvalidCodePointError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid code point %#x at index %d (byte offset %d)", e.Value, e.Index, e.Offset)
	}
	return fmt.Sprintf("invalid code point %#x at index %d", e.Value, e.Index)
}

// Unwrap returns ErrInvalidCodePoint for errors.Is() compatibility.
func (e *InvalidCodePointError) Unwrap() error { return ErrInvalidCodePoint }

// Error implements the error interface.
func (e *TruncatedSequenceError) Error() string {
	return fmt.Sprintf("truncated sequence at byte offset %d: lead byte needs %d bytes, %d left", e.Offset, e.Need, e.Have)
}

// Unwrap returns ErrTruncatedSequence for errors.Is() compatibility.
func (e *TruncatedSequenceError) Unwrap() error { return ErrTruncatedSequence }

// Error implements the error interface.
func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid byte 0x%02x at offset %d", e.Value, e.Offset)
}

// Unwrap returns ErrInvalidByte for errors.Is() compatibility.
func (e *InvalidByteError) Unwrap() error { return ErrInvalidByte }

// Error implements the error interface.
func (e *NonCanonicalEncodingError) Error() string {
	return fmt.Sprintf("non-canonical encoding at byte offset %d: %s", e.Offset, e.Reason)
}

// Unwrap returns ErrNonCanonicalEncoding for errors.Is() compatibility.
func (e *NonCanonicalEncodingError) Unwrap() error { return ErrNonCanonicalEncoding }

// Error implements the error interface.
func (e *PackOverflowError) Error() string {
	return fmt.Sprintf("%d encoded bytes do not fit in a %d-bit word (max %d)", e.Len, int(e.Width), e.Width.Bytes())
}

// Unwrap returns ErrPackOverflow for errors.Is() compatibility.
func (e *PackOverflowError) Unwrap() error { return ErrPackOverflow }
