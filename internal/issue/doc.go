// SPDX-License-Identifier: MPL-2.0

// Package issue turns codec, corpus and configuration failures into
// user-facing errors with remediation hints, and holds a catalog of
// Markdown guidance rendered with glamour.
package issue
