// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bocukit/bocu1/internal/issue"
)

func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [topic]",
		Short: "Explain an error and how to fix it",
		Long: `Print the help page for an error topic. Without a topic, list the
topics. Error messages name the topic that applies to them in verbose mode.`,
		Example: `  bocu1 explain
  bocu1 explain non-canonical`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var slugs []string
			for _, is := range issue.Values() {
				if strings.HasPrefix(is.Slug(), toComplete) {
					slugs = append(slugs, is.Slug())
				}
			}
			return slugs, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(app.stdout, topicTable())
				return nil
			}
			is := issue.Lookup(args[0])
			if is == nil {
				return fmt.Errorf("unknown topic %q (run 'bocu1 explain' to list topics)", args[0])
			}
			rendered, err := is.Render(app.glamourStyle())
			if err != nil {
				return fmt.Errorf("render topic %s: %w", args[0], err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}

// topicTable lists catalog entries with the title of each page.
func topicTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return tableCellStyle.Foreground(ColorHighlight)
			}
			return tableCellStyle
		}).
		Headers("Topic", "Summary")
	for _, is := range issue.Values() {
		t.Row(is.Slug(), issueTitle(is))
	}
	return t.String()
}

// issueTitle returns the first heading of the entry's page.
func issueTitle(is *issue.Issue) string {
	for line := range strings.Lines(string(is.MarkdownMsg())) {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return title
		}
	}
	return ""
}
