package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   10,
		FilesWithIssues:  3,
		LinesChecked:     420,
		BlocksChecked:    2,
		DiagnosticsTotal: 15,
		DiagnosticsBySeverity: map[runner.Severity]int{
			runner.SeverityError:   5,
			runner.SeverityWarning: 10,
		},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Lines checked:     420")
	assert.Contains(t, result, "Markdown blocks:   2")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Total issues:      15")
	assert.Contains(t, result, "Errors:          5")
	assert.Contains(t, result, "Warnings:        10")
	assert.Contains(t, result, "Check failed")
}

func TestFormatSummary_Outcomes(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[runner.Severity]int{}}
	result := styles.FormatSummary(clean)
	assert.Contains(t, result, "Check passed")
	assert.NotContains(t, result, "Files with issues:")
	assert.NotContains(t, result, "Markdown blocks:")

	warned := runner.Stats{
		FilesProcessed:        1,
		FilesWithIssues:       1,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[runner.Severity]int{runner.SeverityWarning: 1},
	}
	assert.Contains(t, styles.FormatSummary(warned), "Check completed with warnings")

	unreadable := runner.Stats{FilesErrored: 1, DiagnosticsBySeverity: map[runner.Severity]int{}}
	assert.Contains(t, styles.FormatSummary(unreadable), "Check failed")
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesProcessed:   4,
				FilesWithIssues:  2,
				DiagnosticsTotal: 3,
				DiagnosticsBySeverity: map[runner.Severity]int{
					runner.SeverityError:   2,
					runner.SeverityWarning: 1,
				},
			},
			want: "3 issues (2 errors, 1 warning) in 2 files\n",
		},
		{
			name: "unreadable",
			stats: runner.Stats{
				FilesWithIssues:       1,
				FilesErrored:          1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[runner.Severity]int{runner.SeverityError: 1},
			},
			want: "1 issue (1 error) in 1 file, 1 unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
