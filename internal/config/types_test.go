// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

func TestConfigValidateCollectsErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Decode:  DecodeConfig{Mode: "sloppy"},
		Pack:    PackConfig{Width: 32},
		Output:  OutputConfig{Format: "octal"},
		Workers: -2,
		UI:      UIConfig{ColorScheme: "neon"},
		Log:     LogConfig{Level: "trace"},
	}
	err := cfg.Validate()

	var ice *InvalidConfigError
	if !errors.As(err, &ice) {
		t.Fatalf("Validate() = %v, want InvalidConfigError", err)
	}
	if len(ice.FieldErrors) != 6 {
		t.Errorf("FieldErrors = %d, want 6: %v", len(ice.FieldErrors), ice.FieldErrors)
	}
	for _, target := range []error{
		ErrInvalidConfig,
		bocu1.ErrInvalidMode,
		bocu1.ErrInvalidWidth,
		ErrInvalidOutputFormat,
		ErrInvalidColorScheme,
		ErrInvalidLogLevel,
	} {
		if !errors.Is(err, target) {
			t.Errorf("Validate() error does not match %v", target)
		}
	}
}

func TestEnumValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "hex", err: OutputHex.Validate()},
		{name: "spaced", err: OutputSpaced.Validate()},
		{name: "base64", err: OutputBase64.Validate()},
		{name: "empty format", err: OutputFormat("").Validate(), target: ErrInvalidOutputFormat},
		{name: "auto", err: ColorSchemeAuto.Validate()},
		{name: "light", err: ColorSchemeLight.Validate()},
		{name: "bad scheme", err: ColorScheme("Dark").Validate(), target: ErrInvalidColorScheme},
		{name: "debug", err: LogLevelDebug.Validate()},
		{name: "error", err: LogLevelError.Validate()},
		{name: "bad level", err: LogLevel("fatal").Validate(), target: ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.target == nil {
				if tt.err != nil {
					t.Errorf("Validate() = %v, want nil", tt.err)
				}
				return
			}
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("Validate() = %v, want %v", tt.err, tt.target)
			}
		})
	}
}
