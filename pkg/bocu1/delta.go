// SPDX-License-Identifier: MPL-2.0

package bocu1

import "unicode/utf8"

// MaxCodePoint is the largest Unicode scalar value.
const MaxCodePoint rune = utf8.MaxRune

// ValidCodePoint reports whether cp is a Unicode scalar value: in
// [0, 0x10FFFF] and outside the surrogate range [0xD800, 0xDFFF].
func ValidCodePoint(cp rune) bool {
	return utf8.ValidRune(cp)
}

// Delta returns the signed distance from the anchor of s to cp.
func Delta(cp rune, s State) int32 {
	return int32(cp - s.anchor)
}

// Apply inverts Delta. It fails when anchor+delta is not a scalar value.
func (s State) Apply(delta int32) (rune, error) {
	cp := s.anchor + rune(delta)
	if !ValidCodePoint(cp) {
		return 0, &InvalidCodePointError{Offset: -1, Value: cp}
	}
	return cp, nil
}
