// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bocukit/bocu1/internal/config"
	"github.com/bocukit/bocu1/internal/issue"
)

// newConfigCommand creates the `bocu1 config` command tree. Subcommands
// read the configuration loaded by the root command.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bocu1 configuration",
		Long: `Manage bocu1 configuration.

Configuration is stored in:
  - Linux: ~/.config/bocu1/config.cue
  - macOS: ~/Library/Application Support/bocu1/config.cue
  - Windows: %APPDATA%\bocu1\config.cue

Every setting can be overridden by an environment variable named after
its path, e.g. BOCU1_DECODE_MODE=lenient or BOCU1_PACK_WIDTH=128.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showConfig(app)
			return nil
		},
	})

	var (
		force    bool
		initPath string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, initPath, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&initPath, "path", "", "file to write (default is the per-user config file)")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath("")
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, p)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Output the CUE schema configuration files are checked against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.Schema())
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	cfg := app.cfg

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	if app.cfgPath != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), app.cfgPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("decode.mode"), valueStyle.Render(cfg.Decode.Mode))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("pack.width"), valueStyle.Render(cfg.Pack.Width.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("output.format"), valueStyle.Render(cfg.Output.Format.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("workers"), valueStyle.Render(fmt.Sprint(cfg.Workers)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("log.level"), valueStyle.Render(cfg.Log.Level.String()))
}

func initConfig(app *App, path string, force bool) error {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(""); err != nil {
			return err
		}
	}
	written, err := config.Init(path, force)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create config").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	if !written {
		fmt.Fprintf(app.stdout, "%s %s already exists (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
