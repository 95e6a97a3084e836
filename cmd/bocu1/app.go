// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bocukit/bocu1/internal/config"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

type (
	// ConfigProvider loads configuration.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// App holds the dependencies and per-invocation state shared by all
	// command handlers.
	App struct {
		Config ConfigProvider
		Logger *log.Logger

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Set by the root command's PersistentPreRunE.
		cfg     *config.Config
		cfgPath string

		// Persistent flag values.
		verbose    bool
		configFile string
		logLevel   string
	}

	// Dependencies are the injection points of NewApp. Nil fields get the
	// production defaults.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		Logger: log.NewWithOptions(deps.Stderr, log.Options{Prefix: "bocu1", Level: log.WarnLevel}),
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
	}
}

// loadConfig loads configuration and applies it to the logger and the
// verbose flag. Flags set on the command line win over the file. A broken
// default config file is reported and replaced by defaults, so that
// "config init --force" can still repair it; an explicit --config file
// must load.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configFile})
	if err != nil {
		if a.configFile != "" {
			return err
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg, path = config.DefaultConfig(), ""
	}
	a.cfg, a.cfgPath = cfg, path

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	level := string(cfg.Log.Level)
	if a.logLevel != "" {
		level = a.logLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return &config.InvalidLogLevelError{Value: config.LogLevel(level)}
	}
	if a.verbose && lvl > log.InfoLevel {
		lvl = log.InfoLevel
	}
	a.Logger.SetLevel(lvl)

	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	a.Logger.Debug("configuration loaded", "path", path, "mode", cfg.Decode.Mode, "width", cfg.Pack.Width)
	return nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// decodeMode returns the mode named by flag, or the configured mode.
func (a *App) decodeMode(flag string) (bocu1.Mode, error) {
	if flag != "" {
		return bocu1.ParseMode(flag)
	}
	return a.cfg.DecodeMode()
}

// packWidth returns the width given by flag, or the configured width.
func (a *App) packWidth(flag int) (bocu1.Width, error) {
	w := a.cfg.Pack.Width
	if flag != 0 {
		w = bocu1.Width(flag)
	}
	if err := w.Validate(); err != nil {
		return 0, err
	}
	return w, nil
}

// outputFormat returns the format named by flag, or the configured format.
func (a *App) outputFormat(flag string) (config.OutputFormat, error) {
	f := a.cfg.Output.Format
	if flag != "" {
		f = config.OutputFormat(flag)
	}
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// workers returns flag when positive, otherwise the configured count.
func (a *App) workers(flag int) int {
	if flag > 0 {
		return flag
	}
	return a.cfg.Workers
}
