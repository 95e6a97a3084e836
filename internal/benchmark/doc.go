// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks of the bocu1 hot paths, used to build
// a PGO profile:
//   - encoding and decoding across scripts
//   - packing and key comparison
//   - test-vector corpus parsing and verification
//
// To generate a profile, run:
//
//	go test ./internal/benchmark -run '^$' -bench . -cpuprofile default.pgo
package benchmark
