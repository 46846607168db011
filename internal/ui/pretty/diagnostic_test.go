package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/runner"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diag := runner.Diagnostic{
		Kind:     document.ProblemUnclosedBracket,
		Severity: runner.SeverityError,
		Pos:      syntax.Position{Line: 9, Column: 0},
		Message:  "unclosed bracket '('",
	}

	result := styles.FormatDiagnostic("app.py", diag, false, "")

	assert.Equal(t, "  app.py:10:1  error  unclosed bracket '('  (unclosed-bracket)\n", result)
}

func TestFormatDiagnostic_Block(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diag := runner.Diagnostic{
		Kind:     document.ProblemUnterminatedTriple,
		Severity: runner.SeverityWarning,
		Pos:      syntax.Position{Line: 4, Column: 2},
		Message:  "unterminated triple-quoted string (triple-double)",
		Block:    2,
	}

	result := styles.FormatDiagnostic("README.md", diag, false, "")

	assert.Contains(t, result, "README.md:5:3")
	assert.Contains(t, result, "warning")
	assert.Contains(t, result, "(unterminated-triple-string, block 2)")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diag := runner.Diagnostic{
		Kind:     document.ProblemMismatchedBracket,
		Severity: runner.SeverityError,
		Pos:      syntax.Position{Line: 0, Column: 9},
		Message:  "mismatched bracket",
	}

	result := styles.FormatDiagnostic("a.py", diag, true, "x = (1, 2]")
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "        x = (1, 2]", lines[1])
	assert.Equal(t, strings.Repeat(" ", 8+9)+"^", lines[2])
}

func TestFormatDiagnostic_Related(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diag := runner.Diagnostic{
		Kind:     document.ProblemMismatchedBracket,
		Severity: runner.SeverityError,
		Pos:      syntax.Position{Line: 5, Column: 4},
		Message:  "mismatched bracket '(' pairs with ']'",
		Related:  &syntax.Position{Line: 5, Column: 10},
		Block:    1,
	}

	result := styles.FormatDiagnostic("notes.md", diag, false, "")
	assert.Equal(t,
		"  notes.md:6:5  error  mismatched bracket '(' pairs with ']' at 6:11  (mismatched-bracket, block 1)\n",
		result)
}

func TestFormatSourceContext_Tabs(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	// Tabs render as four spaces, so the caret shifts with them.
	result := styles.FormatSourceContext("\tf(", 2)
	assert.Equal(t, "            f(\n             ^\n", result)

	// Columns past the end clamp to the end of the line.
	result = styles.FormatSourceContext("ab", 10)
	assert.Equal(t, "        ab\n          ^\n", result)
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.py", styles.FormatFileHeader("a.py", 0))
	assert.Equal(t, "a.py (1 issue)", styles.FormatFileHeader("a.py", 1))
	assert.Equal(t, "a.py (3 issues)", styles.FormatFileHeader("a.py", 3))
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "error", styles.FormatSeverity(runner.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(runner.SeverityWarning))
	assert.Equal(t, "custom", styles.FormatSeverity("custom"))
}
