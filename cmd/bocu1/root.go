// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the bocu1 command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/bocukit/bocu1/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bocu1",
		Short: "Binary Ordered Compression for Unicode",
		Long: TitleStyle.Render("bocu1") + SubtitleStyle.Render(" - Binary Ordered Compression for Unicode") + `

bocu1 converts text to and from BOCU-1, a compact encoding whose byte
order equals the code point order of the text. Short encodings can be
packed into 64 or 128-bit integer sort keys.

` + SubtitleStyle.Render("Examples:") + `
  bocu1 encode hello              Encode text
  bocu1 decode b8b5bcbcbf         Decode hex bytes
  bocu1 pack --width 128 Ελλάδα   Pack into a 128-bit word
  bocu1 inspect "aé"              Show how each code point is encoded
  bocu1 verify                    Run the built-in test vectors
  bocu1 check --count 100000      Run the randomized self-check`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd.Context())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&app.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/bocu1/config.cue)")
	pf.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		newEncodeCommand(app),
		newDecodeCommand(app),
		newInspectCommand(app),
		newPackCommand(app),
		newUnpackCommand(app),
		newVerifyCommand(app),
		newCheckCommand(app),
		newConfigCommand(app),
		newExplainCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code carried by an ExitError,
// or 1 for any other error.
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			writeError(w, app, err)
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// writeError prints err with its suggestions. In verbose mode the catalog
// entry linked to the error is rendered below it.
func writeError(w io.Writer, app *App, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, app.verbose))

	var ae *issue.ActionableError
	if !app.verbose || !errors.As(err, &ae) {
		return
	}
	if is := issue.Get(ae.Issue); is != nil {
		rendered, rerr := is.Render(app.glamourStyle())
		if rerr != nil {
			app.Logger.Debug("render issue", "slug", is.Slug(), "error", rerr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
