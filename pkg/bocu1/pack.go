// SPDX-License-Identifier: MPL-2.0

package bocu1

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Width64 packs up to 8 encoded bytes.
	Width64 Width = 64
	// Width128 packs up to 16 encoded bytes.
	Width128 Width = 128
)

type (
	// Width is the bit width of a packed word.
	Width int

	// InvalidWidthError is returned when a Width is neither 64 nor 128.
	InvalidWidthError struct {
		Value Width
	}

	// Uint128 is an unsigned 128-bit integer. A packed 64-bit word lives in Lo.
	Uint128 struct {
		Hi, Lo uint64
	}

	// Key is a packed word together with the encoded length it holds.
	// The length disambiguates trailing U+0000 (byte 0x00) from padding.
	Key struct {
		Word  Uint128
		Len   int
		Width Width
	}
)

// Error implements the error interface.
func (e *InvalidWidthError) Error() string {
	return fmt.Sprintf("invalid pack width %d (valid: 64, 128)", int(e.Value))
}

// Unwrap returns ErrInvalidWidth for errors.Is() compatibility.
func (e *InvalidWidthError) Unwrap() error { return ErrInvalidWidth }

// Validate returns an error unless w is Width64 or Width128.
func (w Width) Validate() error {
	switch w {
	case Width64, Width128:
		return nil
	default:
		return &InvalidWidthError{Value: w}
	}
}

// Bytes returns the number of bytes a word of width w holds.
func (w Width) Bytes() int { return int(w) / 8 }

// String returns the decimal bit width.
func (w Width) String() string { return strconv.Itoa(int(w)) }

// Compare returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint128) Compare(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// String returns u as 0x-prefixed hex, 16 digits when Hi is zero, 32 otherwise.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("0x%016x", u.Lo)
	}
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}

// ParseUint128 parses a hex word with an optional 0x prefix and optional
// '_' digit separators.
func ParseUint128(s string) (Uint128, error) {
	h := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if h == "" || len(h) > 32 {
		return Uint128{}, fmt.Errorf("parse word %q: want 1 to 32 hex digits", s)
	}
	var u Uint128
	if len(h) > 16 {
		hi, err := strconv.ParseUint(h[:len(h)-16], 16, 64)
		if err != nil {
			return Uint128{}, fmt.Errorf("parse word %q: %w", s, err)
		}
		u.Hi = hi
		h = h[len(h)-16:]
	}
	lo, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return Uint128{}, fmt.Errorf("parse word %q: %w", s, err)
	}
	u.Lo = lo
	return u, nil
}

// Pack places b in the most significant bytes of a w-bit word, first byte
// highest, and zero-fills the rest. It returns a *PackOverflowError rather
// than truncating when b is longer than w/8 bytes.
func Pack(b []byte, w Width) (Uint128, error) {
	if err := w.Validate(); err != nil {
		return Uint128{}, err
	}
	if len(b) > w.Bytes() {
		return Uint128{}, &PackOverflowError{Len: len(b), Width: w}
	}
	var buf [16]byte
	copy(buf[:], b)
	if w == Width64 {
		return Uint128{Lo: binary.BigEndian.Uint64(buf[:8])}, nil
	}
	return Uint128{Hi: binary.BigEndian.Uint64(buf[:8]), Lo: binary.BigEndian.Uint64(buf[8:])}, nil
}

// Pack64 is Pack for Width64.
func Pack64(b []byte) (uint64, error) {
	u, err := Pack(b, Width64)
	return u.Lo, err
}

// Unpack returns the length bytes packed in word. The length cannot be
// recovered from the word itself, since a packed byte 0x00 looks like
// padding. Set bits in the padding are reported as ErrInvalidPadding.
func Unpack(word Uint128, w Width, length int) ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if length < 0 || length > w.Bytes() {
		return nil, &PackOverflowError{Len: length, Width: w}
	}
	var buf [16]byte
	if w == Width64 {
		if word.Hi != 0 {
			return nil, fmt.Errorf("word %s exceeds 64 bits: %w", word, ErrInvalidWidth)
		}
		binary.BigEndian.PutUint64(buf[:8], word.Lo)
	} else {
		binary.BigEndian.PutUint64(buf[:8], word.Hi)
		binary.BigEndian.PutUint64(buf[8:], word.Lo)
	}
	for i := length; i < w.Bytes(); i++ {
		if buf[i] != 0 {
			return nil, fmt.Errorf("byte %d of word %s is %#x past length %d: %w", i, word, buf[i], length, ErrInvalidPadding)
		}
	}
	out := make([]byte, length)
	copy(out, buf[:length])
	return out, nil
}

// Unpack64 is Unpack for Width64.
func Unpack64(word uint64, length int) ([]byte, error) {
	return Unpack(Uint128{Lo: word}, Width64, length)
}

// NewKey packs an encoded byte sequence into a Key.
func NewKey(b []byte, w Width) (Key, error) {
	word, err := Pack(b, w)
	if err != nil {
		return Key{}, err
	}
	return Key{Word: word, Len: len(b), Width: w}, nil
}

// EncodeKey encodes s and packs it into a Key of width w.
func EncodeKey(s string, w Width) (Key, error) {
	b, err := EncodeString(s)
	if err != nil {
		return Key{}, err
	}
	return NewKey(b, w)
}

// Bytes unpacks the encoded bytes held by k.
func (k Key) Bytes() ([]byte, error) {
	return Unpack(k.Word, k.Width, k.Len)
}

// Decode unpacks and decodes k.
func (k Key) Decode(mode Mode) (string, error) {
	b, err := k.Bytes()
	if err != nil {
		return "", err
	}
	return DecodeString(b, mode)
}

// Compare orders keys of the same width by word, then by length. The
// result equals code point order of the packed strings, including strings
// that differ only by trailing U+0000.
func (k Key) Compare(o Key) int {
	if c := k.Word.Compare(o.Word); c != 0 {
		return c
	}
	switch {
	case k.Len < o.Len:
		return -1
	case k.Len > o.Len:
		return 1
	}
	return 0
}
