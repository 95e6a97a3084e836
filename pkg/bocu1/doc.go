// SPDX-License-Identifier: MPL-2.0

// Package bocu1 implements BOCU-1, the Binary Ordered Compression for Unicode.
//
// BOCU-1 is a stateful encoding: each code point is written as the signed
// difference between itself and an anchor derived from the previous code
// point. Deltas are written with a variable-length code of one to four bytes
// whose byte order matches delta order, so the encoding has these properties:
//
//   - Ordered: bytes.Compare(Encode(a), Encode(b)) equals the lexicographic
//     comparison of the code point sequences a and b.
//
//   - Compact: text that stays within one script block costs about one byte
//     per code point after the first; CJK and Hangul cost about two.
//
//   - Self-synchronizing: the C0 controls U+0000..U+001F are written as
//     themselves and reset the encoder state, so decoding can restart right
//     after any of those bytes. U+0020 (SP) is also written as itself but
//     leaves the state untouched, keeping word-separated text compact, so
//     self-synchronization is limited to U+0000..U+001F and decoding cannot
//     restart after a 0x20 byte.
//
// The byte output is identical to the reference implementation published
// with Unicode Technical Note #6.
//
// # Layers
//
// The codec is split into three independent layers connected only by plain
// values:
//
//  1. [State] and [Delta] turn a code point into a delta from the current anchor.
//  2. [EncodeDelta] and [DecodeDigits] turn a delta into [Digits] and back.
//  3. The byte mapper turns each digit into a byte, reserving bytes below 0x21
//     for self-encoded controls and 0xFF for an explicit state reset.
//
// [Encode] and [Decode] compose the layers over whole sequences.
//
// # Packed keys
//
// [Pack] places an encoded byte sequence into the most significant bytes of a
// 64- or 128-bit word, so plain integer comparison of two packed words of the
// same width reproduces code point order. Because U+0000 encodes as the byte
// 0x00, a packed word cannot tell trailing NULs from padding; [Unpack] therefore
// takes the byte length explicitly and [Key] carries it alongside the word.
package bocu1
