// SPDX-License-Identifier: MPL-2.0

package bocu1

import (
	"fmt"
	"strings"
)

const (
	// LeadDigits is the size of the leading-digit alphabet.
	LeadDigits = 222
	// TrailDigits is the size of the trailing-digit alphabet.
	TrailDigits = 243
	// MaxDigits is the longest digit sequence for a single delta.
	MaxDigits = 4
)

// Digits is one delta written in the biased variable-length numeral system:
// a leading digit in [0, LeadDigits) followed by zero to three trailing
// digits in [0, TrailDigits). The leading digit alone determines the length.
type Digits struct {
	n int
	d [MaxDigits]int32
}

// window maps a contiguous range of leading digits to a contiguous range
// of deltas. A delta is written as offset + (lead-base)*243^(n-1) + trail,
// trail being the n-1 trailing digits read as a base-243 number.
type window struct {
	first, last int32 // leading digits
	base        int32 // leading digit of the first delta at or above offset
	offset      int32
	n           int
}

// The seven windows, ordered by delta. Leading digits are relative to the
// first lead byte 0x21; the lead byte of each window is noted alongside.
var windows = [...]window{
	{first: 0x00, last: 0x00, base: 0x01, offset: -0x2DD0C, n: 4}, // 0x21
	{first: 0x01, last: 0x03, base: 0x04, offset: -0x2911, n: 3},  // 0x22..0x24
	{first: 0x04, last: 0x2E, base: 0x2F, offset: -0x40, n: 2},    // 0x25..0x4F
	{first: 0x2F, last: 0xAE, base: 0x6F, offset: 0, n: 1},        // 0x50..0xCF, zero delta at 0x90
	{first: 0xAF, last: 0xD9, base: 0xAF, offset: 0x40, n: 2},     // 0xD0..0xFA
	{first: 0xDA, last: 0xDC, base: 0xDA, offset: 0x2911, n: 3},   // 0xFB..0xFD
	{first: 0xDD, last: 0xDD, base: 0xDD, offset: 0x2DD0C, n: 4},  // 0xFE
}

// windowLo and windowHi hold the delta range of each window, derived from
// the table at init.
var windowLo, windowHi [len(windows)]int32

// windowByLead indexes windows by leading digit.
var windowByLead [LeadDigits]uint8

func init() {
	var next int32
	for i, w := range windows {
		if w.first != next || w.last < w.first {
			panic(fmt.Sprintf("bocu1: window %d does not continue the lead digit range at %#x", i, next))
		}
		scale := pow243(w.n - 1)
		windowLo[i] = w.offset + (w.first-w.base)*scale
		windowHi[i] = w.offset + (w.last-w.base+1)*scale - 1
		if i > 0 && windowLo[i] != windowHi[i-1]+1 {
			panic(fmt.Sprintf("bocu1: window %d delta range is not contiguous", i))
		}
		for l := w.first; l <= w.last; l++ {
			windowByLead[l] = uint8(i)
		}
		next = w.last + 1
	}
	if next != LeadDigits {
		panic("bocu1: windows do not cover the lead digit alphabet")
	}
	// Single-digit deltas are -64..63; two digits reach 0x2910 upward
	// and -0x2911 downward; three digits reach 0x2DD0B and -0x2DD0C.
	if windowLo[3] != -0x40 || windowHi[3] != 0x3F ||
		windowLo[2] != -0x2911 || windowHi[4] != 0x2910 ||
		windowLo[1] != -0x2DD0C || windowHi[5] != 0x2DD0B {
		panic("bocu1: window bounds disagree with the reference")
	}
}

func pow243(n int) int32 {
	p := int32(1)
	for range n {
		p *= TrailDigits
	}
	return p
}

// divMod is floored division by a positive divisor: the remainder is
// always in [0, d).
func divMod(v, d int32) (q, r int32) {
	q, r = v/d, v%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}

func windowFor(delta int32) int {
	for i := range windows {
		if delta <= windowHi[i] {
			return i
		}
	}
	return len(windows) - 1
}

// MinimalLen returns the number of digits needed for delta.
func MinimalLen(delta int32) int {
	return windows[windowFor(delta)].n
}

// DigitLen returns the length of the digit sequence that starts with the
// given leading digit.
func DigitLen(lead int32) int {
	return windows[windowByLead[lead]].n
}

// EncodeDelta writes delta in its minimal digit form.
// Deltas beyond the outermost windows are a programming error.
func EncodeDelta(delta int32) Digits {
	i := windowFor(delta)
	if delta < windowLo[i] || delta > windowHi[i] {
		panic(fmt.Sprintf("bocu1: delta %d outside the representable range", delta))
	}
	w := windows[i]
	ds := Digits{n: w.n}
	v := delta - w.offset
	for j := w.n - 1; j > 0; j-- {
		v, ds.d[j] = divMod(v, TrailDigits)
	}
	ds.d[0] = w.base + v
	return ds
}

// DecodeDigits inverts EncodeDelta.
func DecodeDigits(ds Digits) int32 {
	w := windows[windowByLead[ds.d[0]]]
	v := ds.d[0] - w.base
	for j := 1; j < ds.n; j++ {
		v = v*TrailDigits + ds.d[j]
	}
	return v + w.offset
}

// Len returns the number of digits.
func (ds Digits) Len() int { return ds.n }

// Lead returns the leading digit.
func (ds Digits) Lead() int32 { return ds.d[0] }

// At returns digit i; digit 0 is the leading digit.
func (ds Digits) At(i int) int32 { return ds.d[i] }

// Compare orders digit sequences lexicographically. For sequences produced
// by EncodeDelta it agrees with the order of the deltas.
func (ds Digits) Compare(o Digits) int {
	for i := 0; i < ds.n && i < o.n; i++ {
		switch {
		case ds.d[i] < o.d[i]:
			return -1
		case ds.d[i] > o.d[i]:
			return 1
		}
	}
	switch {
	case ds.n < o.n:
		return -1
	case ds.n > o.n:
		return 1
	}
	return 0
}

// String returns the digits in brackets, e.g. "[175 67]".
func (ds Digits) String() string {
	parts := make([]string, ds.n)
	for i := range ds.n {
		parts[i] = fmt.Sprint(ds.d[i])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
