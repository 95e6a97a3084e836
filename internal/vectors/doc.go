// SPDX-License-Identifier: MPL-2.0

// Package vectors loads BOCU-1 test-vector corpora from CUE or TOML files
// and verifies them against the codec.
//
// A corpus is a list of vectors. A vector gives an input (text or code
// points) and the bytes it must encode to, optionally the packed 64- or
// 128-bit words, or an error kind the encoder or decoder must report.
// The reference corpus is compiled in and returned by Builtin.
package vectors
