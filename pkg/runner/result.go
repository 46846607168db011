package runner

import (
	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// Severity ranks a diagnostic.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a document problem placed in its file.
type Diagnostic struct {
	Kind     document.ProblemKind `json:"kind"`
	Severity Severity             `json:"severity"`

	// Pos is 0-based within the file, Markdown block offsets already applied.
	Pos     syntax.Position `json:"position"`
	Message string          `json:"message"`

	// Related is the other bracket of a mismatched pair, in the same coordinates as Pos.
	Related *syntax.Position `json:"related,omitempty"`

	// Block is the 1-based Markdown code block index, 0 for Python files.
	Block int `json:"block,omitempty"`
}

// Detail is Message followed by the 1-based location of Related, if any.
func (d Diagnostic) Detail() string {
	if d.Related == nil {
		return d.Message
	}
	return d.Message + " at " + d.Related.Location()
}

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	Language Language

	// Lines is the number of Python lines checked.
	Lines int

	// Blocks is the number of Markdown code blocks checked.
	Blocks int

	Diagnostics []Diagnostic

	// Source holds the file's lines, for showing diagnostics in context.
	Source []string

	// Error is set if the file could not be processed.
	Error error
}

// Errors returns the number of error-severity diagnostics.
func (o FileOutcome) Errors() int {
	n := 0
	for _, d := range o.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// LinesChecked is the total number of Python lines checked.
	LinesChecked int

	// BlocksChecked is the total number of Markdown code blocks checked.
	BlocksChecked int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[Severity]int

	// DiagnosticsByKind maps problem kinds to counts.
	DiagnosticsByKind map[document.ProblemKind]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostics with error severity occurred
// or any file could not be read.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[SeverityError] > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[Severity]int),
		DiagnosticsByKind:     make(map[document.ProblemKind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.LinesChecked += outcome.Lines
	r.Stats.BlocksChecked += outcome.Blocks
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range outcome.Diagnostics {
		r.Stats.DiagnosticsBySeverity[diag.Severity]++
		r.Stats.DiagnosticsByKind[diag.Kind]++
	}
}
