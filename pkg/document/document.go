// Package document keeps the highlight scheduler, bracket matcher and completion engine of
// one open document on the same version, and a Workspace of such documents keyed by handle.
package document

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/yaklabco/pyhl/pkg/brackets"
	"github.com/yaklabco/pyhl/pkg/complete"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// Handle identifies an open document.
type Handle uuid.UUID

// NewHandle returns a random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// ParseHandle parses the canonical string form of a handle.
func ParseHandle(s string) (Handle, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Handle{}, fmt.Errorf("parse handle %q: %w", s, err)
	}
	return Handle(u), nil
}

// String returns the canonical UUID form.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// MarshalText implements encoding.TextMarshaler.
func (h Handle) MarshalText() ([]byte, error) {
	return uuid.UUID(h).MarshalText()
}

// Options configures the documents of a Workspace.
type Options struct {
	// Tokenizer is shared by every document. Nil selects the default Python tokenizer.
	Tokenizer *syntax.Tokenizer

	// Theme produces style instructions. Nil leaves updates unstyled.
	Theme highlight.Theme

	// Completion is shared by every document. Nil selects the Python vocabulary.
	Completion *complete.Engine

	// AutoClose enables bracket auto-closing.
	AutoClose bool
}

func (o Options) withDefaults() Options {
	if o.Tokenizer == nil {
		o.Tokenizer = syntax.NewTokenizer(nil)
	}
	if o.Completion == nil {
		o.Completion = complete.New(nil, complete.Options{})
	}
	return o
}

// Result is what the shell repaints after a change.
type Result struct {
	Version  uint64                 `json:"version"`
	Updates  []highlight.LineUpdate `json:"updates,omitempty"`
	Problems []Problem              `json:"problems,omitempty"`
}

// Snapshot is a consistent copy of a document's state.
type Snapshot struct {
	Handle   Handle             `json:"handle"`
	Name     string             `json:"name"`
	Version  uint64             `json:"version"`
	Lines    []string           `json:"lines"`
	Tokens   [][]syntax.Token   `json:"tokens"`
	States   []syntax.LineState `json:"states"`
	Problems []Problem          `json:"problems,omitempty"`
	Stats    highlight.Stats    `json:"-"`
}

// Document is one open document. All methods are safe for concurrent use.
type Document struct {
	mu sync.Mutex

	handle    Handle
	name      string
	version   uint64
	autoClose bool

	sched    *highlight.Scheduler
	brackets *brackets.Matcher
	engine   *complete.Engine
	problems []Problem

	// unterminated holds the start columns of unclosed single-quoted strings per line.
	unterminated [][]int
}

// NewDocument creates an empty document outside any workspace.
func NewDocument(name string, opts Options) *Document {
	return newDocument(NewHandle(), name, opts.withDefaults())
}

func newDocument(h Handle, name string, opts Options) *Document {
	return &Document{
		handle:    h,
		name:      name,
		autoClose: opts.AutoClose,
		sched:     highlight.NewScheduler(opts.Tokenizer, opts.Theme),
		brackets:  brackets.New(),
		engine:    opts.Completion,
	}
}

// Handle returns the document handle.
func (d *Document) Handle() Handle {
	return d.handle
}

// Name returns the name the document was opened with.
func (d *Document) Name() string {
	return d.name
}

// Version returns the current version. Every applied change increments it.
func (d *Document) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Load replaces the whole text and retokenizes every line.
func (d *Document) Load(src highlight.LineSource) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	updates := d.sched.Load(src)
	d.unterminated = make([][]int, d.sched.LineCount())
	d.bump(0, updates)
	return d.result(updates)
}

// Edit applies a line edit.
func (d *Document) Edit(edit highlight.EditRange) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edit(edit)
}

// Replace diffs lines against the current text and applies the difference as one edit.
// Identical text is a no-op that keeps the version.
func (d *Document) Replace(lines []string) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edit(DiffEdit(d.sched.Text(), lines))
}

// SetTheme restyles every line without retokenizing.
func (d *Document) SetTheme(theme highlight.Theme) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result(d.sched.SetTheme(theme))
}

// MatchFor answers a bracket query at pos.
func (d *Document) MatchFor(pos syntax.Position) (brackets.Match, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brackets.MatchFor(pos)
}

// AutoClose handles typing opened at cursor. When auto-closing is enabled and opened is an
// opening bracket it inserts the pair, returning the insertion and true. Otherwise it
// changes nothing and returns false.
func (d *Document) AutoClose(opened rune, cursor syntax.Position) (Result, brackets.Insertion, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.autoClose {
		return Result{Version: d.version}, brackets.Insertion{}, false, nil
	}
	ins, ok := brackets.AutoClose(opened, cursor)
	if !ok {
		return Result{Version: d.version}, brackets.Insertion{}, false, nil
	}

	line, err := d.sched.Line(cursor.Line)
	if err != nil {
		return Result{}, brackets.Insertion{}, false, err
	}
	edit, err := ins.Edit(line)
	if err != nil {
		return Result{}, brackets.Insertion{}, false, err
	}
	res, err := d.edit(edit)
	if err != nil {
		return Result{}, brackets.Insertion{}, false, err
	}
	return res, ins, true, nil
}

// Suggest returns completion candidates for the prefix left of cursor.
func (d *Document) Suggest(cursor syntax.Position) (complete.Query, []string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	line, err := d.sched.Line(cursor.Line)
	if err != nil {
		return complete.Query{}, nil, err
	}
	return d.engine.SuggestAt(line, cursor)
}

// Accept replaces the query prefix with candidate.
func (d *Document) Accept(q complete.Query, candidate string) (Result, complete.Replacement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := complete.Accept(q, candidate)
	line, err := d.sched.Line(r.Line)
	if err != nil {
		return Result{}, complete.Replacement{}, err
	}
	edit, err := r.Edit(line)
	if err != nil {
		return Result{}, complete.Replacement{}, err
	}
	res, err := d.edit(edit)
	if err != nil {
		return Result{}, complete.Replacement{}, err
	}
	return res, r, nil
}

// Problems returns the problems of the current version in position order.
func (d *Document) Problems() []Problem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Problem(nil), d.problems...)
}

// Snapshot returns a copy of the current state.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Snapshot{
		Handle:   d.handle,
		Name:     d.name,
		Version:  d.version,
		Lines:    d.sched.Text(),
		Tokens:   d.sched.Lines(),
		States:   d.sched.States(),
		Problems: append([]Problem(nil), d.problems...),
		Stats:    d.sched.Stats(),
	}
}

func (d *Document) edit(edit highlight.EditRange) (Result, error) {
	if edit.IsNoop() {
		return Result{Version: d.version}, nil
	}
	updates, err := d.sched.OnEdit(edit)
	if err != nil {
		return Result{}, fmt.Errorf("edit %s: %w", d.name, err)
	}
	d.unterminated = slices.Replace(d.unterminated, edit.StartLine, edit.EndLine,
		make([][]int, len(edit.NewLines()))...)
	d.bump(edit.StartLine, updates)
	return d.result(updates), nil
}

// bump advances the version and brings everything derived from the tokens up to date.
// Lines before from are unchanged; updates are the lines the scheduler retokenized.
func (d *Document) bump(from int, updates []highlight.LineUpdate) {
	d.version++
	d.brackets.Update(d.version, from, d.sched)

	for _, u := range updates {
		line, _ := d.sched.Line(u.Line)
		in := syntax.StateNormal
		if u.Line > 0 {
			in, _ = d.sched.State(u.Line - 1)
		}
		d.unterminated[u.Line] = unterminatedStrings(line, u.Tokens, in)
	}

	d.problems = collectProblems(d.sched, d.brackets.Diagnostics(), d.unterminated)
}

func (d *Document) result(updates []highlight.LineUpdate) Result {
	return Result{
		Version:  d.version,
		Updates:  updates,
		Problems: append([]Problem(nil), d.problems...),
	}
}
