// SPDX-License-Identifier: MPL-2.0

package bocu1

import "fmt"

const (
	// spaceByte is U+0020, self-encoded without a state reset.
	spaceByte = 0x20
	// literalLimit is the first byte that is not a self-encoded control.
	literalLimit = 0x21
	// leadBias is the byte of leading digit 0.
	leadBias = 0x21
	// ResetByte never starts a code value; decoders reset their state on it.
	// The encoder never emits it.
	ResetByte = 0xFF
)

// Trail bytes avoid the bytes that carry meaning in text protocols:
// NUL, BEL..SI, SUB, ESC and SP. The remaining 243 bytes, in increasing
// order, are the trailing-digit alphabet.
var trailRanges = [...]struct{ lo, hi byte }{
	{lo: 0x01, hi: 0x06},
	{lo: 0x10, hi: 0x19},
	{lo: 0x1C, hi: 0x1F},
	{lo: 0x21, hi: 0xFF},
}

var (
	trailBytes  [TrailDigits]byte
	trailDigits [256]int16 // -1 for bytes outside the trail alphabet
)

func init() {
	for i := range trailDigits {
		trailDigits[i] = -1
	}
	n := 0
	for _, r := range trailRanges {
		for b := int(r.lo); b <= int(r.hi); b++ {
			if n > 0 && byte(b) <= trailBytes[n-1] {
				panic(fmt.Sprintf("bocu1: trail byte %#x out of order", b))
			}
			trailBytes[n] = byte(b)
			trailDigits[b] = int16(n)
			n++
		}
	}
	if n != TrailDigits {
		panic(fmt.Sprintf("bocu1: %d trail bytes, want %d", n, TrailDigits))
	}
	if leadBias+LeadDigits != ResetByte {
		panic("bocu1: lead byte range must end just below the reset byte")
	}
}

// leadByte maps a leading digit to its byte in 0x21..0xFE.
func leadByte(d int32) byte { return byte(d + leadBias) }

// leadDigit maps a lead byte (0x21..0xFE) to its digit.
func leadDigit(b byte) int32 { return int32(b) - leadBias }

// trailByte maps a trailing digit to its byte.
func trailByte(d int32) byte { return trailBytes[d] }

// trailDigit maps a byte back to a trailing digit.
func trailDigit(b byte) (int32, bool) {
	d := trailDigits[b]
	return int32(d), d >= 0
}

// appendDigits maps ds to bytes.
func appendDigits(dst []byte, ds Digits) []byte {
	dst = append(dst, leadByte(ds.d[0]))
	for j := 1; j < ds.n; j++ {
		dst = append(dst, trailByte(ds.d[j]))
	}
	return dst
}

// readDigits maps the code value starting at b[off] back to digits. The
// byte at off must be a lead byte.
func readDigits(b []byte, off int) (Digits, error) {
	lead := leadDigit(b[off])
	ds := Digits{n: DigitLen(lead)}
	ds.d[0] = lead
	if have := len(b) - off; have < ds.n {
		return Digits{}, &TruncatedSequenceError{Offset: off, Need: ds.n, Have: have}
	}
	for j := 1; j < ds.n; j++ {
		t, ok := trailDigit(b[off+j])
		if !ok {
			return Digits{}, &InvalidByteError{Offset: off + j, Value: b[off+j]}
		}
		ds.d[j] = t
	}
	return ds, nil
}

// Bytes returns the byte form of ds.
func (ds Digits) Bytes() []byte {
	return appendDigits(make([]byte, 0, ds.n), ds)
}
