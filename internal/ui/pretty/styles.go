// Package pretty styles pyhl's terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/pyhl/pkg/config"
)

// Styles contains the styles of every piece of CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Diagnostic lines.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Run summaries.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Listings such as themes and match output.
	Heading lipgloss.Style
	Current lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indexes.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorGray   = lipgloss.Color("8")
	colorSilver = lipgloss.Color("7")
)

// NewStyles returns the output styles. The color profile is forced rather than
// detected, so --color=always colors piped output too.
func NewStyles(colorEnabled bool) *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	if !colorEnabled {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return &Styles{
			Error: plain, Warning: plain,
			FilePath: plain, Location: plain, Kind: plain, Message: plain, SourceLine: plain, Caret: plain,
			SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
			Heading: plain, Current: plain,
			Dim: plain, Bold: plain,
		}
	}
	r.SetColorProfile(termenv.ANSI256)

	fg := func(c lipgloss.Color) lipgloss.Style { return r.NewStyle().Foreground(c) }
	bold := r.NewStyle().Bold(true)

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),

		FilePath:   bold,
		Location:   fg(colorGray),
		Kind:       fg(colorGray),
		Message:    r.NewStyle(),
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed),

		SummaryTitle: bold,
		SummaryValue: r.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		Heading: bold.Underline(true),
		Current: fg(colorGreen),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode for writer. In auto mode (also used for
// empty or unknown modes) NO_COLOR disables color, CLICOLOR_FORCE enables it, and
// otherwise color follows whether writer is a terminal.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
