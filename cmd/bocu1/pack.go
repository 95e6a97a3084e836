// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bocukit/bocu1/internal/issue"
	"github.com/bocukit/bocu1/pkg/bocu1"
)

// formatWord prints a packed word with the digit count of its width.
func formatWord(k bocu1.Key) string {
	if k.Width == bocu1.Width128 {
		return fmt.Sprintf("0x%016x%016x", k.Word.Hi, k.Word.Lo)
	}
	return k.Word.String()
}

func newPackCommand(app *App) *cobra.Command {
	var (
		in      textInput
		width   int
		fromHex string
	)
	cmd := &cobra.Command{
		Use:   "pack [text...]",
		Short: "Pack a short BOCU-1 encoding into an integer sort key",
		Long: `Encode text and pack the bytes into the high end of a 64 or 128-bit
word, zero-filled below. Prints the word and the encoded length. Comparing
words, then lengths, orders keys like the code points of their text.

Text that encodes to more bytes than the word holds is rejected.`,
		Example: `  bocu1 pack hello
  bocu1 pack --width 128 Ελλάδα
  bocu1 pack --hex b8b5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.packWidth(width)
			if err != nil {
				return err
			}

			var (
				b        []byte
				resource string
			)
			if fromHex != "" {
				if len(args) > 0 || in.codePoints != "" {
					return errors.New("--hex cannot be combined with other input")
				}
				resource = "--hex"
				if b, err = parseHexBytes(fromHex); err != nil {
					return issue.NewErrorContext().
						WithOperation("parse hex input").
						WithIssue(issue.MalformedEncodingId).
						Wrap(err).
						BuildError()
				}
			} else {
				var (
					cps  []rune
					text string
				)
				cps, text, resource, err = in.read(app, args)
				if err != nil {
					return err
				}
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
			}

			k, err := bocu1.NewKey(b, w)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("pack input").
					WithResource(resource).
					Wrap(err).
					BuildError()
			}
			app.Logger.Info("packed", "bytes", k.Len, "width", w)
			fmt.Fprintf(app.stdout, "%s %d\n", formatWord(k), k.Len)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().IntVarP(&width, "width", "w", 0, "word width: 64 or 128 (default from config)")
	cmd.Flags().StringVar(&fromHex, "hex", "", "pack already encoded bytes given as hex")
	return cmd
}

func newUnpackCommand(app *App) *cobra.Command {
	var (
		length    int
		width     int
		mode      string
		showBytes bool
		format    string
	)
	cmd := &cobra.Command{
		Use:   "unpack <word>",
		Short: "Unpack an integer sort key and decode it",
		Long: `Unpack the encoded bytes held in a packed word and decode them.

The word alone does not say how many bytes it holds, since a packed 0x00
byte looks like padding, so --len is required. Set bits below the packed
bytes are rejected.`,
		Example: `  bocu1 unpack 0xb8b5bcbcbf000000 --len 5
  bocu1 unpack 0xb8b5000000000000 --len 2 --bytes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.packWidth(width)
			if err != nil {
				return err
			}
			m, err := app.decodeMode(mode)
			if err != nil {
				return err
			}
			word, err := bocu1.ParseUint128(args[0])
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("parse word").
					WithResource(args[0]).
					WithIssue(issue.InvalidPackedWordId).
					Wrap(err).
					BuildError()
			}
			k := bocu1.Key{Word: word, Len: length, Width: w}

			if showBytes {
				f, err := app.outputFormat(format)
				if err != nil {
					return err
				}
				b, err := k.Bytes()
				if err != nil {
					return issue.NewErrorContext().
						WithOperation("unpack word").
						WithResource(args[0]).
						Wrap(err).
						BuildError()
				}
				out, err := formatBytes(b, f)
				if err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, out)
				return nil
			}

			s, err := k.Decode(m)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("unpack word").
					WithResource(args[0]).
					Wrap(err).
					BuildError()
			}
			fmt.Fprintln(app.stdout, s)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "len", "l", 0, "number of encoded bytes held in the word")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "word width: 64 or 128 (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "decode mode: strict or lenient (default from config)")
	cmd.Flags().BoolVar(&showBytes, "bytes", false, "print the unpacked bytes instead of decoding them")
	cmd.Flags().StringVarP(&format, "format", "f", "", "byte output format with --bytes: hex, spaced or base64")
	_ = cmd.MarkFlagRequired("len")
	return cmd
}
