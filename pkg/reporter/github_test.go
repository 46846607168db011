package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/reporter"
	"github.com/yaklabco/pyhl/pkg/runner"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

func TestGitHubReporter_Annotations(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewGitHubReporter(reporter.Options{Writer: &buf})

	n, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want := "::error file=broken.py,line=1,col=6,title=unclosed-bracket::'(' is never closed\n" +
		"::warning file=broken.py,line=3,col=5,title=unterminated-triple-string::unterminated triple-quoted string (open ''')\n"
	assert.Equal(t, want, buf.String())
}

func TestGitHubReporter_Escaping(t *testing.T) {
	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "docs/a,b:c.md",
		Diagnostics: []runner.Diagnostic{{
			Kind:     document.ProblemUnterminatedString,
			Severity: runner.SeverityError,
			Pos:      syntax.Position{Line: 3, Column: 0},
			Message:  "100% broken\nsecond line",
			Block:    2,
		}},
	}}}

	var buf bytes.Buffer
	_, err := reporter.NewGitHubReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t,
		"::error file=docs/a%2Cb%3Ac.md,line=4,col=1,title=unterminated-string (block 2)::100%25 broken%0Asecond line\n",
		buf.String())
}

func TestGitHubReporter_FileErrorAndSummary(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "gone.py", Error: errors.New("read gone.py: not found")}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	var buf bytes.Buffer
	rep := reporter.NewGitHubReporter(reporter.Options{Writer: &buf, ShowSummary: true})
	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t,
		"::error file=gone.py::read gone.py: not found\n"+
			"No issues found (0 files checked), 1 unreadable\n",
		buf.String())
}

func TestGitHubReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	n, err := reporter.NewGitHubReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}

func TestReporters_RelatedBracketLocation(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "notes.md",
			Diagnostics: []runner.Diagnostic{{
				Kind:     document.ProblemMismatchedBracket,
				Severity: runner.SeverityError,
				Pos:      syntax.Position{Line: 5, Column: 4},
				Message:  "mismatched bracket '(' pairs with ']'",
				Related:  &syntax.Position{Line: 5, Column: 10},
				Block:    1,
			}},
		}},
		Stats: runner.Stats{FilesProcessed: 1, FilesWithIssues: 1, DiagnosticsTotal: 1},
	}

	t.Run("github", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := reporter.NewGitHubReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t,
			"::error file=notes.md,line=6,col=5,title=mismatched-bracket (block 1)::mismatched bracket '(' pairs with ']' at 6:11\n",
			buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
		require.NoError(t, err)

		var out reporter.JSONOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out.Files, 1)
		require.Len(t, out.Files[0].Diagnostics, 1)

		diag := out.Files[0].Diagnostics[0]
		assert.Equal(t, "mismatched bracket '(' pairs with ']'", diag.Message)
		assert.Equal(t, &reporter.JSONLocation{Line: 6, Column: 11}, diag.Related)
	})
}
