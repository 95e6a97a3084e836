// SPDX-License-Identifier: MPL-2.0

package bocu1

import "unicode/utf8"

// Step records how one code point was encoded.
type Step struct {
	// Index is the position of the code point in the input.
	Index int
	// CodePoint is the input value.
	CodePoint rune
	// Anchor is the state anchor the delta was measured from.
	Anchor rune
	// Literal is set for code points below 0x21, written as themselves.
	Literal bool
	// Delta and Digits are zero for literal steps.
	Delta  int32
	Digits Digits
	// Bytes is the output for this code point.
	Bytes []byte
}

// Encode returns the BOCU-1 encoding of cps. The call is all-or-nothing: the
// first value that is not a Unicode scalar aborts it with an
// *InvalidCodePointError.
func Encode(cps []rune) ([]byte, error) {
	out, err := AppendEncode(make([]byte, 0, len(cps)+len(cps)/2), cps)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendEncode appends the encoding of cps to dst. On error dst is returned
// with its original length.
func AppendEncode(dst []byte, cps []rune) ([]byte, error) {
	start := len(dst)
	s := NewState()
	for i, cp := range cps {
		if !ValidCodePoint(cp) {
			return dst[:start], &InvalidCodePointError{Index: i, Offset: -1, Value: cp}
		}
		dst, s = encodeOne(dst, s, cp)
	}
	return dst, nil
}

func encodeOne(dst []byte, s State, cp rune) ([]byte, State) {
	if cp < literalLimit {
		return append(dst, byte(cp)), s.OnControl(cp)
	}
	dst = appendDigits(dst, EncodeDelta(Delta(cp, s)))
	return dst, s.Advance(cp)
}

// EncodeString encodes the code points of the UTF-8 string s. Invalid UTF-8
// is reported as an *InvalidCodePointError carrying the offending byte.
func EncodeString(s string) ([]byte, error) {
	cps, err := decodeUTF8(s)
	if err != nil {
		return nil, err
	}
	return Encode(cps)
}

func decodeUTF8(s string) ([]rune, error) {
	cps := make([]rune, 0, utf8.RuneCountInString(s))
	for off := 0; off < len(s); {
		r, size := utf8.DecodeRuneInString(s[off:])
		if r == utf8.RuneError && size == 1 {
			return nil, &InvalidCodePointError{Index: len(cps), Offset: off, Value: rune(s[off])}
		}
		cps = append(cps, r)
		off += size
	}
	return cps, nil
}

// Trace encodes cps and reports every step.
func Trace(cps []rune) ([]Step, error) {
	steps := make([]Step, 0, len(cps))
	s := NewState()
	for i, cp := range cps {
		if !ValidCodePoint(cp) {
			return nil, &InvalidCodePointError{Index: i, Offset: -1, Value: cp}
		}
		st := Step{Index: i, CodePoint: cp, Anchor: s.Anchor(), Literal: cp < literalLimit}
		if !st.Literal {
			st.Delta = Delta(cp, s)
			st.Digits = EncodeDelta(st.Delta)
		}
		st.Bytes, s = encodeOne(nil, s, cp)
		steps = append(steps, st)
	}
	return steps, nil
}
