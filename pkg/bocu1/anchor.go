// SPDX-License-Identifier: MPL-2.0

package bocu1

// baselineAnchor is the anchor at the start of every sequence and after
// every C0 control.
const baselineAnchor rune = 0x40

// Blocks whose code points are spread too widely for the 128-block default
// get a fixed anchor near their center. Values are normative.
var anchorBlocks = [...]struct {
	lo, hi rune
	anchor rune
}{
	{lo: 0x3040, hi: 0x309F, anchor: 0x3070}, // Hiragana
	{lo: 0x4E00, hi: 0x9FA5, anchor: 0x7711}, // CJK Unified Ideographs (Unicode 1.0.1)
	{lo: 0xAC00, hi: 0xD7A3, anchor: 0xC1D1}, // Hangul syllables
}

// blockAnchor returns the anchor used for the code point following cp.
// Outside the fixed blocks it is the middle of cp's 128-aligned block.
func blockAnchor(cp rune) rune {
	for _, b := range anchorBlocks {
		if cp >= b.lo && cp <= b.hi {
			return b.anchor
		}
	}
	return cp&^0x7F + 0x40
}
