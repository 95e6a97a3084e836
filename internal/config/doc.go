// SPDX-License-Identifier: MPL-2.0

// Package config loads application settings with Viper. Defaults are set in
// code, a CUE file validated against the embedded config_schema.cue is
// merged over them, and BOCU1_* environment variables override both.
package config
