// SPDX-License-Identifier: MPL-2.0

package selfcheck

import (
	"math/rand/v2"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

// span is a half-open code point range with a selection weight.
type span struct {
	lo, hi rune
	weight int
}

// spans covers the anchor table blocks, the digit window edges seen from
// the baseline anchor, and the rest of the scalar range.
var spans = []span{
	{0x00, 0x21, 2},
	{0x21, 0x80, 6},
	{0x80, 0x800, 4},
	{0x800, 0x3040, 2},
	{0x3040, 0x30A0, 3},
	{0x30A0, 0x4E00, 1},
	{0x4E00, 0x9FA6, 4},
	{0x9FA6, 0xAC00, 1},
	{0xAC00, 0xD7A4, 3},
	{0xD7A4, 0xD800, 1},
	{0xE000, 0x10000, 1},
	{0x10000, 0x110000, 2},
}

// edges are code points at anchor and window boundaries.
var edges = []rune{
	0x00, 0x1F, 0x20, 0x21, 0x7F, 0x80,
	0x40 - 0x40, 0x40 + 0x3F, 0x40 + 0x40,
	0x40 + 0x2910, 0x40 + 0x2911,
	0x40 + 0x2DD0B, 0x40 + 0x2DD0C,
	0x303F, 0x3040, 0x309F, 0x30A0,
	0x4DFF, 0x4E00, 0x9FA5, 0x9FA6,
	0xABFF, 0xAC00, 0xD7A3, 0xD7A4,
	0xD7FF, 0xE000, 0xFFFF, 0x10000, bocu1.MaxCodePoint,
}

var totalWeight = func() int {
	n := 0
	for _, s := range spans {
		n += s.weight
	}
	return n
}()

// RandomText returns up to maxLen Unicode scalar values. Runs of code points
// from one block are likely, as in natural text, mixed with edge values.
func RandomText(r *rand.Rand, maxLen int) []rune {
	out := make([]rune, r.IntN(maxLen+1))
	cur := pickSpan(r)
	for i := range out {
		switch n := r.IntN(10); {
		case n == 0:
			out[i] = edges[r.IntN(len(edges))]
			continue
		case n < 3:
			cur = pickSpan(r)
		}
		out[i] = cur.lo + r.Int32N(cur.hi-cur.lo)
	}
	return out
}

func pickSpan(r *rand.Rand) span {
	n := r.IntN(totalWeight)
	for _, s := range spans {
		if n < s.weight {
			return s
		}
		n -= s.weight
	}
	return spans[len(spans)-1]
}
