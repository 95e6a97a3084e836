// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/runenames"

	"github.com/bocukit/bocu1/internal/issue"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

// textInput selects where a command reads its code points from.
type textInput struct {
	codePoints  string
	keepNewline bool
}

func (in *textInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.codePoints, "code-points", "", "read code points (U+XXXX, 0xXX or decimal) instead of text")
	cmd.Flags().BoolVar(&in.keepNewline, "keep-newline", false, "keep the trailing newline of stdin input")
}

// read returns either code points or raw text, plus a name for error
// messages. Text is returned unconverted so the encoder can report invalid
// UTF-8 at its byte offset.
func (in *textInput) read(app *App, args []string) (cps []rune, text string, resource string, err error) {
	if in.codePoints != "" {
		if len(args) > 0 {
			return nil, "", "", errors.New("--code-points cannot be combined with text arguments")
		}
		cps, err = parseCodePoints(in.codePoints)
		if err != nil {
			return nil, "", "", issue.NewErrorContext().
				WithOperation("parse code points").
				WithIssue(issue.InvalidInputId).
				Wrap(err).
				BuildError()
		}
		return cps, "", "--code-points", nil
	}
	resource = "argument"
	if len(args) == 0 {
		resource = "stdin"
	}
	text, err = readInput(app.stdin, args, in.keepNewline)
	return nil, text, resource, err
}

func newEncodeCommand(app *App) *cobra.Command {
	var (
		in     textInput
		format string
	)
	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode text to BOCU-1",
		Long: `Encode text to BOCU-1 and print the bytes.

Text comes from the arguments, joined by spaces, or from stdin when no
argument is given. With --code-points the input is a list of code points,
which may include values that are not Unicode scalars.`,
		Example: `  bocu1 encode hello
  echo -n "Ελλάδα" | bocu1 encode --format spaced
  bocu1 encode --code-points "U+0061 U+00E9"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.outputFormat(format)
			if err != nil {
				return err
			}
			cps, text, resource, err := in.read(app, args)
			if err != nil {
				return err
			}
			var b []byte
			if cps != nil {
				b, err = bocu1.Encode(cps)
			} else {
				b, err = bocu1.EncodeString(text)
			}
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("encode input").
					WithResource(resource).
					Wrap(err).
					BuildError()
			}
			out, err := formatBytes(b, f)
			if err != nil {
				return err
			}
			app.Logger.Info("encoded", "bytes", len(b), "format", f)
			fmt.Fprintln(app.stdout, out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: hex, spaced or base64 (default from config)")
	return cmd
}

func newDecodeCommand(app *App) *cobra.Command {
	var (
		mode       string
		codePoints bool
	)
	cmd := &cobra.Command{
		Use:   "decode [hex...]",
		Short: "Decode BOCU-1 bytes to text",
		Long: `Decode BOCU-1 bytes given as hex and print the text.

Hex may be contiguous, spaced or colon separated. It is read from stdin
when no argument is given. Strict mode, the default, rejects input the
encoder never produces. Lenient mode accepts the reset byte 0xFF and
multi-byte codes for C0 controls and space.`,
		Example: `  bocu1 decode b8b5bcbcbf
  bocu1 decode --mode lenient "b1 ff d0 76"
  bocu1 decode --code-points d076b9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.decodeMode(mode)
			if err != nil {
				return err
			}
			raw, err := readInput(app.stdin, args, false)
			if err != nil {
				return err
			}
			b, err := parseHexBytes(raw)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("parse hex input").
					WithIssue(issue.MalformedEncodingId).
					Wrap(err).
					BuildError()
			}
			cps, err := bocu1.Decode(b, m)
			if err != nil {
				ec := issue.NewErrorContext().WithOperation("decode input")
				if m == bocu1.Strict {
					ec.WithSuggestion("Retry with --mode lenient to accept non-canonical input")
				}
				return ec.Wrap(err).BuildError()
			}
			app.Logger.Info("decoded", "bytes", len(b), "code_points", len(cps), "mode", m)
			if codePoints {
				fmt.Fprintln(app.stdout, formatCodePoints(cps))
			} else {
				fmt.Fprintln(app.stdout, string(cps))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "decode mode: strict or lenient (default from config)")
	cmd.Flags().BoolVar(&codePoints, "code-points", false, "print U+XXXX code points instead of text")
	return cmd
}

func newInspectCommand(app *App) *cobra.Command {
	var in textInput
	cmd := &cobra.Command{
		Use:   "inspect [text...]",
		Short: "Show how each code point is encoded",
		Long: `Encode text and print one row per code point: the anchor the
delta is measured from, the delta and the bytes written.`,
		Example: `  bocu1 inspect "aé"
  bocu1 inspect --code-points "U+3041 U+000A U+3042"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cps, text, resource, err := in.read(app, args)
			if err != nil {
				return err
			}
			if cps == nil {
				// EncodeString reports the offset of invalid UTF-8.
				if _, err = bocu1.EncodeString(text); err == nil {
					cps = []rune(text)
				}
			}
			var steps []bocu1.Step
			if err == nil {
				steps, err = bocu1.Trace(cps)
			}
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("inspect input").
					WithResource(resource).
					Wrap(err).
					BuildError()
			}
			fmt.Fprintln(app.stdout, traceTable(steps))

			total := 0
			for _, st := range steps {
				total += len(st.Bytes)
			}
			fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d code points, %d bytes", len(steps), total)))
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

// traceTable renders encoder steps as a table.
func traceTable(steps []bocu1.Step) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("#", "Code point", "Name", "Anchor", "Delta", "Bytes")

	for _, st := range steps {
		delta := "literal"
		if !st.Literal {
			delta = fmt.Sprintf("%+d", st.Delta)
		}
		spaced := make([]string, len(st.Bytes))
		for i, c := range st.Bytes {
			spaced[i] = fmt.Sprintf("%02x", c)
		}
		t.Row(
			fmt.Sprint(st.Index),
			fmt.Sprintf("U+%04X", st.CodePoint),
			runeName(st.CodePoint),
			fmt.Sprintf("U+%04X", st.Anchor),
			delta,
			strings.Join(spaced, " "),
		)
	}
	return t.String()
}

// runeName returns the Unicode character name, or a placeholder for
// unassigned code points.
func runeName(cp rune) string {
	if name := runenames.Name(cp); name != "" {
		return name
	}
	return "<unassigned>"
}
