package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pyhl/pkg/runner"
)

// jsonSchemaVersion is bumped whenever the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document written by the JSON reporter.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one checked file. Error is set instead of diagnostics when the
// file could not be read.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Blocks      int              `json:"blocks,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is one problem. Line and column are 1-based; Block is the 1-based
// Markdown code block the problem was found in, or zero for Python files.
type JSONDiagnostic struct {
	Kind     string        `json:"kind"`
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Related  *JSONLocation `json:"related,omitempty"`
	Block    int           `json:"block,omitempty"`
}

// JSONLocation is a 1-based file location.
type JSONLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// JSONSummary mirrors runner.Stats.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	LinesChecked    int            `json:"linesChecked"`
	BlocksChecked   int            `json:"blocksChecked"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByKind          map[string]int `json:"byKind"`
}

// JSONReporter writes a single JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := JSONOutput{Version: jsonSchemaVersion, Files: []JSONFileResult{}}
	var stats runner.Stats
	if result != nil {
		stats = result.Stats
		for _, file := range result.Files {
			out.Files = append(out.Files, toJSONFile(file, r.opts.WorkingDir))
		}
	}
	out.Summary = toJSONSummary(stats)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return out.Summary.TotalIssues, nil
}

func toJSONFile(file runner.FileOutcome, workDir string) JSONFileResult {
	res := JSONFileResult{
		Path:        displayPath(file.Path, workDir),
		Language:    string(file.Language),
		Blocks:      file.Blocks,
		Diagnostics: make([]JSONDiagnostic, len(file.Diagnostics)),
	}
	if file.Error != nil {
		res.Error = file.Error.Error()
	}
	for i, d := range file.Diagnostics {
		res.Diagnostics[i] = JSONDiagnostic{
			Kind:     string(d.Kind),
			Severity: string(d.Severity),
			Message:  d.Message,
			Line:     d.Pos.Line + 1,
			Column:   d.Pos.Column + 1,
			Block:    d.Block,
		}
		if d.Related != nil {
			res.Diagnostics[i].Related = &JSONLocation{Line: d.Related.Line + 1, Column: d.Related.Column + 1}
		}
	}
	return res
}

func toJSONSummary(stats runner.Stats) JSONSummary {
	sum := JSONSummary{
		FilesChecked:    stats.FilesProcessed,
		FilesWithIssues: stats.FilesWithIssues,
		FilesErrored:    stats.FilesErrored,
		LinesChecked:    stats.LinesChecked,
		BlocksChecked:   stats.BlocksChecked,
		TotalIssues:     stats.DiagnosticsTotal,
		BySeverity:      make(map[string]int, len(stats.DiagnosticsBySeverity)),
		ByKind:          make(map[string]int, len(stats.DiagnosticsByKind)),
	}
	for sev, n := range stats.DiagnosticsBySeverity {
		sum.BySeverity[string(sev)] = n
	}
	for kind, n := range stats.DiagnosticsByKind {
		sum.ByKind[string(kind)] = n
	}
	return sum
}
