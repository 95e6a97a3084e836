// SPDX-License-Identifier: MPL-2.0

package bocu1_test

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"testing"
	"testing/quick"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

func TestRoundTripQuick(t *testing.T) {
	t.Parallel()

	roundTrip := func(s string) bool {
		enc, err := bocu1.EncodeString(s)
		if err != nil {
			return false
		}
		dec, err := bocu1.DecodeString(enc, bocu1.Strict)
		return err == nil && dec == s
	}
	if err := quick.Check(roundTrip, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}

// scriptRanges biases generated text toward the regions the anchor table
// and the window boundaries care about.
var scriptRanges = [][2]rune{
	{0x00, 0x21},
	{0x21, 0x80},
	{0x80, 0x800},
	{0x3040, 0x30A0},
	{0x4E00, 0x9FA6},
	{0xAC00, 0xD7A4},
	{0xE000, 0x10000},
	{0x10000, 0x110000},
}

func randomRunes(r *rand.Rand, maxLen int) []rune {
	out := make([]rune, r.IntN(maxLen+1))
	for i := range out {
		span := scriptRanges[r.IntN(len(scriptRanges))]
		out[i] = span[0] + r.Int32N(span[1]-span[0])
	}
	return out
}

func TestEncodingPreservesOrder(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	for range 20000 {
		a, b := randomRunes(r, 6), randomRunes(r, 6)
		if r.IntN(4) == 0 && len(a) > 0 {
			// Shared prefixes exercise the state carried into the first
			// differing code point.
			b = append(slices.Clone(a[:r.IntN(len(a))]), b...)
		}

		ea, err := bocu1.Encode(a)
		if err != nil {
			t.Fatalf("Encode(%U) error = %v", a, err)
		}
		eb, err := bocu1.Encode(b)
		if err != nil {
			t.Fatalf("Encode(%U) error = %v", b, err)
		}
		if want, got := slices.Compare(a, b), bytes.Compare(ea, eb); want != got {
			t.Fatalf("order mismatch for %U vs %U: code points %d, bytes %d (%x vs %x)", a, b, want, got, ea, eb)
		}
	}
}

func TestPackedKeysPreserveOrder(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 5))
	checked := 0
	for checked < 5000 {
		a, b := randomRunes(r, 4), randomRunes(r, 4)
		ka, errA := bocu1.EncodeKey(string(a), bocu1.Width128)
		kb, errB := bocu1.EncodeKey(string(b), bocu1.Width128)
		if errA != nil || errB != nil {
			// Too long for the word.
			continue
		}
		checked++
		if want, got := slices.Compare(a, b), ka.Compare(kb); want != got {
			t.Fatalf("order mismatch for %U vs %U: code points %d, keys %d", a, b, want, got)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		cps := randomRunes(r, 64)
		if slices.ContainsFunc(cps, func(cp rune) bool { return !bocu1.ValidCodePoint(cp) }) {
			continue
		}
		enc, err := bocu1.Encode(cps)
		if err != nil {
			t.Fatalf("Encode(%U) error = %v", cps, err)
		}
		got, err := bocu1.Decode(enc, bocu1.Strict)
		if err != nil {
			t.Fatalf("Decode(%x) error = %v", enc, err)
		}
		if !slices.Equal(got, cps) {
			t.Fatalf("Decode(Encode(%U)) = %U", cps, got)
		}
	}
}
