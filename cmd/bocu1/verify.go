// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bocukit/bocu1/internal/issue"
	"github.com/bocukit/bocu1/internal/selfcheck"
	"github.com/bocukit/bocu1/internal/vectors"
)

func newVerifyCommand(app *App) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "verify [corpus...]",
		Short: "Check the codec against test vector files",
		Long: `Run the codec on every vector of the given corpus files and report
vectors whose results differ from what the file expects.

Corpus files are CUE (.cue) or TOML (.toml). Without arguments the
built-in reference corpus is used. Exits with status 2 when a vector
fails.`,
		Example: `  bocu1 verify
  bocu1 verify testdata/vectors.cue extra.toml --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var corpora []*vectors.Corpus
			if len(args) == 0 {
				corpora = append(corpora, vectors.Builtin())
			}
			for _, path := range args {
				c, err := vectors.Load(path)
				if err != nil {
					return issue.NewErrorContext().
						WithOperation("load test vectors").
						WithResource(path).
						WithIssue(issue.CorpusLoadFailedId).
						Wrap(err).
						BuildError()
				}
				corpora = append(corpora, c)
			}

			var failed []string
			for _, c := range corpora {
				rep, err := vectors.Verify(cmd.Context(), c, vectors.Options{
					Workers: app.workers(workers),
					Logger:  app.Logger,
				})
				if err != nil {
					return err
				}
				app.Logger.Info("corpus verified", "source", rep.Source, "vectors", len(rep.Results), "elapsed", rep.Elapsed)
				writeReport(app, rep)

				var me *vectors.MismatchError
				if errors.As(rep.Err(), &me) {
					failed = append(failed, me.Failed...)
				}
			}
			if len(failed) > 0 {
				return &ExitError{
					Code: ExitMismatch,
					Err: issue.NewErrorContext().
						WithOperation("verify test vectors").
						WithIssue(issue.VectorMismatchId).
						Wrap(&vectors.MismatchError{Failed: failed}).
						BuildError(),
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "concurrent vector checks (default from config, 0 means one per CPU)")
	return cmd
}

// writeReport prints a summary line for rep. Failed vectors are always
// listed; passing ones only in verbose mode.
func writeReport(app *App, rep *vectors.Report) {
	passed, failed := rep.Counts()
	if failed == 0 {
		fmt.Fprintf(app.stdout, "%s %s: %d vectors passed\n", SuccessStyle.Render("✓"), rep.Source, passed)
	} else {
		fmt.Fprintf(app.stdout, "%s %s: %d passed, %d failed\n", ErrorStyle.Render("✗"), rep.Source, passed, failed)
	}
	if failed == 0 && !app.verbose {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("Vector", "Result", "Detail")
	for _, res := range rep.Results {
		switch {
		case res.Passed() && app.verbose:
			t.Row(res.Name, SuccessStyle.Render("pass"), "")
		case !res.Passed():
			t.Row(res.Name, ErrorStyle.Render("FAIL"), strings.Join(res.Failures, "\n"))
		}
	}
	fmt.Fprintln(app.stdout, t.String())
}

func newCheckCommand(app *App) *cobra.Command {
	var (
		count   int
		seed    uint64
		workers int
		maxLen  int
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the randomized self-check",
		Long: `Generate random pairs of strings and check that the codec
round-trips them in both decode modes, that byte order and packed key order
equal code point order, and that decoding resynchronizes after a control.

Runs are reproducible: the same --seed and --count give the same inputs
whatever the worker count. Exits with status 2 on the first failure.`,
		Example: `  bocu1 check
  bocu1 check --count 1000000 --seed 42 --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := selfcheck.Run(cmd.Context(), selfcheck.Options{
				Count:   count,
				Seed:    seed,
				Workers: app.workers(workers),
				MaxLen:  maxLen,
				Logger:  app.Logger,
			})
			if err != nil {
				var fe *selfcheck.FailureError
				if !errors.As(err, &fe) {
					return err
				}
				return &ExitError{
					Code: ExitMismatch,
					Err: issue.NewErrorContext().
						WithOperation("run self-check").
						WithIssue(issue.SelfCheckFailedId).
						WithSuggestion(fmt.Sprintf("Reproduce with: bocu1 check --seed %d --count %d --workers 1", fe.Seed, fe.Case+1)).
						Wrap(err).
						BuildError(),
				}
			}
			fmt.Fprintf(app.stdout, "%s %d cases passed (seed %d)\n", SuccessStyle.Render("✓"), sum.Cases, sum.Seed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", selfcheck.DefaultCount, "number of input pairs")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "concurrent workers (default from config, 0 means one per CPU)")
	cmd.Flags().IntVar(&maxLen, "max-len", selfcheck.DefaultMaxLen, "maximum code points per generated string")
	return cmd
}
