// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bocukit/bocu1/pkg/bocu1"
)

const (
	// OutputHex prints encoded bytes as contiguous lowercase hex.
	OutputHex OutputFormat = "hex"
	// OutputSpaced prints encoded bytes as space-separated hex pairs.
	OutputSpaced OutputFormat = "spaced"
	// OutputBase64 prints encoded bytes as standard base64.
	OutputBase64 OutputFormat = "base64"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is the sentinel error wrapped by InvalidColorSchemeError.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how encoded bytes are printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level the logger emits.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects field errors found by Config.Validate.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the application configuration.
	Config struct {
		Decode  DecodeConfig `json:"decode" mapstructure:"decode"`
		Pack    PackConfig   `json:"pack" mapstructure:"pack"`
		Output  OutputConfig `json:"output" mapstructure:"output"`
		// Workers bounds the parallelism of verify and check. Zero means
		// one worker per CPU.
		Workers int          `json:"workers" mapstructure:"workers"`
		UI      UIConfig     `json:"ui" mapstructure:"ui"`
		Log     LogConfig    `json:"log" mapstructure:"log"`
	}

	// DecodeConfig holds decoder defaults.
	DecodeConfig struct {
		// Mode is "strict" or "lenient".
		Mode string `json:"mode" mapstructure:"mode"`
	}

	// PackConfig holds packing defaults.
	PackConfig struct {
		Width bocu1.Width `json:"width" mapstructure:"width"`
	}

	// OutputConfig holds output defaults.
	OutputConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig holds logger settings.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Decode: DecodeConfig{Mode: bocu1.Strict.String()},
		Pack:   PackConfig{Width: bocu1.Width64},
		Output: OutputConfig{Format: OutputHex},
		UI:     UIConfig{ColorScheme: ColorSchemeAuto},
		Log:    LogConfig{Level: LogLevelWarn},
	}
}

// DecodeMode returns the configured decode mode.
func (c *Config) DecodeMode() (bocu1.Mode, error) {
	return bocu1.ParseMode(c.Decode.Mode)
}

// Validate checks every field and returns an *InvalidConfigError listing
// all problems, or nil.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.DecodeMode(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Pack.Width.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Output.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns the field errors and ErrInvalidConfig, so errors.Is matches
// both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if f is not a known format.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputHex, OutputSpaced, OutputBase64:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: hex, spaced, base64)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if cs is not auto, dark or light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

func (l LogLevel) String() string { return string(l) }

// Validate returns an error if l is not a known level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }
