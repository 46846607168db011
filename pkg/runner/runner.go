package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/pyhl/internal/logging"
	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/mdsource"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// Runner checks files for bracket and string problems.
type Runner struct {
	// Workspace holds the documents open while their file is being checked.
	Workspace *document.Workspace
}

// New creates a runner whose documents use docOpts.
func New(docOpts document.Options) *Runner {
	return &Runner{Workspace: document.NewWorkspace(docOpts)}
}

// Run discovers files under opts.Paths and checks them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Checks files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation between files
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	extractor := mdsource.New(mdsource.Options{DetectUnlabeled: opts.DetectUnlabeled})

	workCh := make(chan File)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, extractor, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- f:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and emit in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, f := range files {
		if outcome, ok := outcomes[f.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	return result, nil
}

// worker checks files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan File,
	outCh chan<- FileOutcome,
	extractor *mdsource.Extractor,
	opts Options,
) {
	for f := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fileCtx := logging.With(ctx, logging.FieldPath, f.Path)
		outcome := r.CheckFile(fileCtx, f, extractor, opts)
		if outcome.Error != nil {
			logging.FromContext(fileCtx).Debug("check failed", logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// unit is a run of Python lines and where it starts in its file.
type unit struct {
	block     int
	startLine int
	lines     []string
}

// place maps a position within the unit to its position in the file.
func (u unit) place(p syntax.Position) syntax.Position {
	return syntax.Position{Line: u.startLine + p.Line, Column: p.Column}
}

// CheckFile checks a single file. A nil extractor parses Markdown with default options.
func (r *Runner) CheckFile(ctx context.Context, f File, extractor *mdsource.Extractor, opts Options) FileOutcome {
	outcome := FileOutcome{Path: f.Path, Language: f.Language}

	content, _, err := fsutil.ReadFile(ctx, f.Path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Source = highlight.SplitLines(string(content))

	var units []unit
	switch f.Language {
	case LanguageMarkdown:
		if extractor == nil {
			extractor = mdsource.New(mdsource.Options{DetectUnlabeled: opts.DetectUnlabeled})
		}
		blocks, err := extractor.Extract(ctx, content)
		if err != nil {
			outcome.Error = fmt.Errorf("extract %s: %w", f.Path, err)
			return outcome
		}
		for i, b := range blocks {
			units = append(units, unit{block: i + 1, startLine: b.StartLine, lines: b.Lines})
		}
		outcome.Blocks = len(blocks)
	default:
		units = []unit{{lines: outcome.Source}}
	}

	for _, u := range units {
		outcome.Lines += len(u.lines)
		outcome.Diagnostics = append(outcome.Diagnostics, r.checkUnit(f.Path, u, opts.Strict)...)
	}
	return outcome
}

func (r *Runner) checkUnit(path string, u unit, strict bool) []Diagnostic {
	workspace := r.Workspace
	if workspace == nil {
		workspace = document.NewWorkspace(document.Options{})
	}

	doc, _ := workspace.Open(path, highlight.Lines(u.lines))
	defer func() { _ = workspace.Close(doc.Handle()) }()

	problems := doc.Problems()
	if len(problems) == 0 {
		return nil
	}

	diags := make([]Diagnostic, 0, len(problems))
	for _, p := range problems {
		d := Diagnostic{
			Kind:     p.Kind,
			Severity: severityOf(p.Kind, strict),
			Pos:      u.place(p.Pos),
			Message:  p.Message,
			Block:    u.block,
		}
		if p.Related != nil {
			related := u.place(*p.Related)
			d.Related = &related
		}
		diags = append(diags, d)
	}
	return diags
}

// severityOf ranks problems: an open triple-quoted string at end of input is only
// a warning unless strict, everything else is an error.
func severityOf(kind document.ProblemKind, strict bool) Severity {
	if kind == document.ProblemUnterminatedTriple && !strict {
		return SeverityWarning
	}
	return SeverityError
}
