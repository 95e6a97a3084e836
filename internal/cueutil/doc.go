// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles an embedded CUE schema, unifies user data with one
// of its definitions, and decodes the result into a Go value.
//
// Both the configuration file and the test-vector corpus go through
// ParseAndDecode:
//
//	//go:embed corpus_schema.cue
//	var corpusSchema []byte
//
//	res, err := cueutil.ParseAndDecode[corpusFile](corpusSchema, data, "#Corpus",
//	    cueutil.WithFilename(path))
//
// Errors carry the file name and a JSON-style path to the offending field.
package cueutil
