package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/runner"
)

// GitHubReporter writes GitHub Actions workflow commands, which the Actions runner
// turns into annotations on the pull request diff.
type GitHubReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewGitHubReporter creates a GitHub Actions reporter.
func NewGitHubReporter(opts Options) *GitHubReporter {
	return &GitHubReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *GitHubReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))

		if file.Error != nil {
			fmt.Fprintf(r.bw, "::error file=%s::%s\n", escapeProperty(path), escapeData(file.Error.Error()))
			continue
		}

		for _, diag := range file.Diagnostics {
			title := string(diag.Kind)
			if diag.Block > 0 {
				title = fmt.Sprintf("%s (block %d)", title, diag.Block)
			}
			fmt.Fprintf(r.bw, "::%s file=%s,line=%d,col=%d,title=%s::%s\n",
				githubLevel(diag.Severity),
				escapeProperty(path), diag.Pos.Line+1, diag.Pos.Column+1,
				escapeProperty(title), escapeData(diag.Detail()),
			)
			total++
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, pretty.NewStyles(false).FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

func githubLevel(s runner.Severity) string {
	if s == runner.SeverityWarning {
		return "warning"
	}
	return "error"
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
