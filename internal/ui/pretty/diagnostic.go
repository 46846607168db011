package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pyhl/pkg/runner"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Locations are printed 1-based; sourceLine is shown with a caret when showContext is set.
func (s *Styles) FormatDiagnostic(path string, diag runner.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Pos.Line+1,
		diag.Pos.Column+1,
	)

	kind := string(diag.Kind)
	if diag.Block > 0 {
		kind = fmt.Sprintf("%s, block %d", kind, diag.Block)
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Detail()),
		s.Kind.Render("("+kind+")"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Pos.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev runner.Severity) string {
	switch sev {
	case runner.SeverityError:
		return s.Error.Render("error")
	case runner.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// sourceTabWidth matches the tab expansion lipgloss applies when rendering.
const sourceTabWidth = 4

// FormatSourceContext formats the source line with a caret under the 0-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	column = min(max(column, 0), len(line))
	width := column + strings.Count(line[:column], "\t")*(sourceTabWidth-1)
	builder.WriteString(indent + strings.Repeat(" ", width) + s.Caret.Render("^") + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
