// Package complete ranks vocabulary words for the identifier prefix at a cursor.
package complete

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
	"github.com/yaklabco/pyhl/pkg/vocab"
)

// ErrOutOfRange is returned when a cursor lies outside its line.
var ErrOutOfRange = errors.New("out of range")

// DefaultMinPrefix is the shortest prefix that produces suggestions.
const DefaultMinPrefix = 1

// Options tunes an Engine.
type Options struct {
	// MinPrefix is the shortest prefix (in runes) that produces suggestions. Values below 1 mean 1.
	MinPrefix int

	// MaxResults truncates the suggestion list. Zero means unlimited.
	MaxResults int
}

// Engine suggests keywords and builtins. It is immutable and safe for concurrent use.
type Engine struct {
	vocab *vocab.Vocabulary
	opts  Options
}

// New creates an engine over v. A nil vocabulary selects vocab.Python().
func New(v *vocab.Vocabulary, opts Options) *Engine {
	if v == nil {
		v = vocab.Python()
	}
	if opts.MinPrefix < DefaultMinPrefix {
		opts.MinPrefix = DefaultMinPrefix
	}
	if opts.MaxResults < 0 {
		opts.MaxResults = 0
	}
	return &Engine{vocab: v, opts: opts}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Suggest returns the keywords starting with prefix in alphabetical order, followed by
// the builtins starting with prefix in alphabetical order. Matching is case-sensitive.
// An empty or too-short prefix yields no suggestions.
func (e *Engine) Suggest(prefix string) []string {
	if prefix == "" || utf8.RuneCountInString(prefix) < e.opts.MinPrefix {
		return nil
	}

	keywords := e.vocab.KeywordsWithPrefix(prefix)
	builtins := e.vocab.BuiltinsWithPrefix(prefix)

	out := make([]string, 0, len(keywords)+len(builtins))
	out = append(out, keywords...)
	for _, b := range builtins {
		if !e.vocab.IsKeyword(b) {
			out = append(out, b)
		}
	}

	if e.opts.MaxResults > 0 && len(out) > e.opts.MaxResults {
		out = out[:e.opts.MaxResults]
	}
	return out
}

// Query is the identifier prefix ending at a cursor.
type Query struct {
	Prefix string          `json:"prefix"`
	Cursor syntax.Position `json:"cursor"`
}

// Start returns the position where the prefix begins.
func (q Query) Start() syntax.Position {
	return syntax.Position{Line: q.Cursor.Line, Column: q.Cursor.Column - len(q.Prefix)}
}

// QueryAt extracts the run of identifier characters immediately left of cursor.
func QueryAt(lineText string, cursor syntax.Position) (Query, error) {
	if cursor.Column < 0 || cursor.Column > len(lineText) {
		return Query{}, fmt.Errorf("cursor %s on a line of %d bytes: %w", cursor, len(lineText), ErrOutOfRange)
	}

	start := cursor.Column
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(lineText[:start])
		if r == utf8.RuneError || !syntax.IsIdentRune(r) {
			break
		}
		start -= size
	}

	return Query{Prefix: lineText[start:cursor.Column], Cursor: cursor}, nil
}

// SuggestAt combines QueryAt and Suggest.
func (e *Engine) SuggestAt(lineText string, cursor syntax.Position) (Query, []string, error) {
	q, err := QueryAt(lineText, cursor)
	if err != nil {
		return Query{}, nil, err
	}
	return q, e.Suggest(q.Prefix), nil
}

// Replacement tells the editor to replace a line's byte range [Start, End) with Text
// and move the cursor. The engine never edits the document itself.
type Replacement struct {
	Line   int             `json:"line"`
	Start  int             `json:"start"`
	End    int             `json:"end"`
	Text   string          `json:"text"`
	Cursor syntax.Position `json:"cursor"`
}

// Accept returns the replacement that swaps the query prefix for candidate.
func Accept(q Query, candidate string) Replacement {
	start := q.Start()
	return Replacement{
		Line:   q.Cursor.Line,
		Start:  start.Column,
		End:    q.Cursor.Column,
		Text:   candidate,
		Cursor: syntax.Position{Line: q.Cursor.Line, Column: start.Column + len(candidate)},
	}
}

// Apply returns lineText with the replacement applied.
func (r Replacement) Apply(lineText string) (string, error) {
	if r.Start < 0 || r.Start > r.End || r.End > len(lineText) {
		return "", fmt.Errorf("replace [%d, %d) on a line of %d bytes: %w", r.Start, r.End, len(lineText), ErrOutOfRange)
	}
	return lineText[:r.Start] + r.Text + lineText[r.End:], nil
}

// Edit converts the replacement into a line edit for the highlight scheduler.
func (r Replacement) Edit(lineText string) (highlight.EditRange, error) {
	text, err := r.Apply(lineText)
	if err != nil {
		return highlight.EditRange{}, err
	}
	return highlight.ReplaceLine(r.Line, text), nil
}
