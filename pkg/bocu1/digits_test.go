// SPDX-License-Identifier: MPL-2.0

package bocu1

import (
	"math/rand/v2"
	"testing"
)

func TestEncodeDeltaLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int32
		want  int
	}{
		{delta: 0, want: 1},
		{delta: -0x40, want: 1},
		{delta: 0x3F, want: 1},
		{delta: -0x41, want: 2},
		{delta: 0x40, want: 2},
		{delta: -0x2911, want: 2},
		{delta: 0x2910, want: 2},
		{delta: -0x2912, want: 3},
		{delta: 0x2911, want: 3},
		{delta: -0x2DD0C, want: 3},
		{delta: 0x2DD0B, want: 3},
		{delta: -0x2DD0D, want: 4},
		{delta: 0x2DD0C, want: 4},
		{delta: -0x10FFC0, want: 4},
		{delta: 0x10FFBF, want: 4},
	}

	for _, tt := range tests {
		ds := EncodeDelta(tt.delta)
		if ds.Len() != tt.want {
			t.Errorf("EncodeDelta(%#x).Len() = %d, want %d", tt.delta, ds.Len(), tt.want)
		}
		if got := MinimalLen(tt.delta); got != tt.want {
			t.Errorf("MinimalLen(%#x) = %d, want %d", tt.delta, got, tt.want)
		}
		if got := DigitLen(ds.Lead()); got != tt.want {
			t.Errorf("DigitLen(%d) = %d, want %d", ds.Lead(), got, tt.want)
		}
		if got := DecodeDigits(ds); got != tt.delta {
			t.Errorf("DecodeDigits(EncodeDelta(%#x)) = %#x", tt.delta, got)
		}
	}
}

func TestEncodeDeltaZeroIsMiddleDigit(t *testing.T) {
	t.Parallel()

	ds := EncodeDelta(0)
	if ds.Lead() != 0x6F {
		t.Fatalf("EncodeDelta(0).Lead() = %#x, want 0x6f", ds.Lead())
	}
	if b := leadByte(ds.Lead()); b != 0x90 {
		t.Errorf("zero delta lead byte = %#x, want 0x90", b)
	}
}

func TestEncodeDeltaNegativeTrail(t *testing.T) {
	t.Parallel()

	// U+000A measured from the Hiragana anchor: floored division must keep
	// every trailing digit non-negative.
	ds := EncodeDelta(0x0A - 0x3070)
	want := []int32{0x03, 235, 67}
	if ds.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", ds.Len(), len(want))
	}
	for i, w := range want {
		if ds.At(i) != w {
			t.Errorf("digit %d = %d, want %d", i, ds.At(i), w)
		}
	}
	if got := ds.String(); got != "[3 235 67]" {
		t.Errorf("String() = %q", got)
	}
}

func TestDigitsOrderMatchesDeltaOrder(t *testing.T) {
	t.Parallel()

	// Window boundaries plus random deltas.
	deltas := []int32{-0x10FFC0, -0x2DD0D, -0x2DD0C, -0x2912, -0x2911, -0x41, -0x40, 0, 0x3F, 0x40, 0x2910, 0x2911, 0x2DD0B, 0x2DD0C, 0x10FFBF}
	r := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		deltas = append(deltas, r.Int32N(2*0x10FFBF)-0x10FFC0)
	}

	for i := range deltas {
		for j := i + 1; j < len(deltas) && j < i+50; j++ {
			a, b := deltas[i], deltas[j]
			want := 0
			switch {
			case a < b:
				want = -1
			case a > b:
				want = 1
			}
			if got := EncodeDelta(a).Compare(EncodeDelta(b)); got != want {
				t.Fatalf("Compare(EncodeDelta(%d), EncodeDelta(%d)) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestWindowsCoverLeadAlphabet(t *testing.T) {
	t.Parallel()

	for lead := range int32(LeadDigits) {
		n := DigitLen(lead)
		if n < 1 || n > MaxDigits {
			t.Fatalf("DigitLen(%d) = %d", lead, n)
		}
		// The smallest and largest delta under each lead round-trip to a
		// sequence with the same lead and the minimal length.
		lo := Digits{n: n}
		lo.d[0] = lead
		hi := lo
		for j := 1; j < n; j++ {
			hi.d[j] = TrailDigits - 1
		}
		for _, ds := range []Digits{lo, hi} {
			delta := DecodeDigits(ds)
			if MinimalLen(delta) != n {
				t.Errorf("lead %d: delta %d has minimal length %d, sequence has %d", lead, delta, MinimalLen(delta), n)
			}
			if EncodeDelta(delta).Compare(ds) != 0 {
				t.Errorf("lead %d: EncodeDelta(%d) = %v, want %v", lead, delta, EncodeDelta(delta), ds)
			}
		}
	}
}

func TestDivMod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, q, r int32
	}{
		{v: 0, q: 0, r: 0},
		{v: 242, q: 0, r: 242},
		{v: 243, q: 1, r: 0},
		{v: -1, q: -1, r: 242},
		{v: -243, q: -1, r: 0},
		{v: -1877, q: -8, r: 67},
	}
	for _, tt := range tests {
		q, r := divMod(tt.v, TrailDigits)
		if q != tt.q || r != tt.r {
			t.Errorf("divMod(%d, 243) = (%d, %d), want (%d, %d)", tt.v, q, r, tt.q, tt.r)
		}
	}
}
