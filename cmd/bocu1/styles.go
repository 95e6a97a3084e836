// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all command output.
const (
	// ColorPrimary is used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is used for secondary text and table borders.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess marks passing vectors and checks.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError marks failures.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning marks non-fatal problems.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is used for keys, code points and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
	// ColorVerbose is used for supplementary detail.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CmdStyle      = lipgloss.NewStyle().Foreground(ColorHighlight)
	VerboseStyle  = lipgloss.NewStyle().Foreground(ColorVerbose)

	// tableHeaderStyle and tableCellStyle style lipgloss tables.
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
