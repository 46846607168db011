// Package highlight keeps the token classification of a document current as it is edited.
//
// The Scheduler caches tokens and the outgoing LineState per line. After an edit it
// retokenizes the edited lines and then walks downward only while a line's outgoing state
// differs from the one stored before the edit, so an edit inside an ordinary line touches
// that line alone while opening or closing a triple-quoted string repaints the lines it
// affects.
package highlight

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/pyhl/pkg/syntax"
)

// ErrOutOfRange is returned for line indices or edit ranges outside the document.
var ErrOutOfRange = errors.New("out of range")

// LineUpdate is the recomputed presentation of a single line.
type LineUpdate struct {
	Line   int                `json:"line"`
	Tokens []syntax.Token     `json:"tokens"`
	Styles []StyleInstruction `json:"styles,omitempty"`
}

// Stats counts tokenizer work performed by a Scheduler.
type Stats struct {
	// Loads is the number of full passes.
	Loads int

	// Edits is the number of non-empty edits applied.
	Edits int

	// Retokenized is the total number of lines tokenized, across loads and edits.
	Retokenized int

	// LastRetokenized is the number of lines tokenized by the most recent Load or OnEdit.
	LastRetokenized int
}

// Scheduler owns the per-line token and state cache of one document.
// It is not safe for concurrent use; document.Document serializes access.
type Scheduler struct {
	tokenizer *syntax.Tokenizer
	theme     Theme

	lines  []string
	tokens [][]syntax.Token
	states []syntax.LineState

	stats Stats
}

// NewScheduler creates an empty scheduler. A nil tokenizer selects the default Python
// tokenizer; a nil theme produces updates without style instructions.
func NewScheduler(tokenizer *syntax.Tokenizer, theme Theme) *Scheduler {
	if tokenizer == nil {
		tokenizer = syntax.NewTokenizer(nil)
	}
	return &Scheduler{tokenizer: tokenizer, theme: theme}
}

// SetTheme replaces the theme and returns restyled updates for every line.
// No line is retokenized.
func (s *Scheduler) SetTheme(theme Theme) []LineUpdate {
	s.theme = theme
	updates := make([]LineUpdate, len(s.lines))
	for i := range s.lines {
		updates[i] = s.update(i)
	}
	return updates
}

// Load replaces the document with src and tokenizes every line from StateNormal.
func (s *Scheduler) Load(src LineSource) []LineUpdate {
	n := 0
	if src != nil {
		n = src.LineCount()
	}

	s.lines = make([]string, n)
	for i := range n {
		s.lines[i] = src.Line(i)
	}
	s.tokens, s.states = s.tokenizer.TokenizeLines(s.lines)

	s.stats.Loads++
	s.stats.Retokenized += n
	s.stats.LastRetokenized = n

	updates := make([]LineUpdate, n)
	for i := range n {
		updates[i] = s.update(i)
	}
	return updates
}

// OnEdit applies edit and returns updates for every line whose tokens were recomputed,
// in line order. Lines after the edit that kept their incoming state are not touched,
// though their indices may have shifted.
func (s *Scheduler) OnEdit(edit EditRange) ([]LineUpdate, error) {
	start, end := edit.StartLine, edit.EndLine
	if start < 0 || end < start || end > len(s.lines) {
		return nil, fmt.Errorf("edit [%d, %d) on %d lines: %w", start, end, len(s.lines), ErrOutOfRange)
	}

	newLines := edit.NewLines()
	if start == end && len(newLines) == 0 {
		return nil, nil
	}

	in := s.stateBefore(start)

	// boundary is the incoming state the first line after the edit was last tokenized with.
	boundary := in
	if end > start {
		boundary = s.states[end-1]
	}

	s.lines = slices.Replace(s.lines, start, end, newLines...)
	s.tokens = slices.Replace(s.tokens, start, end, make([][]syntax.Token, len(newLines))...)
	s.states = slices.Replace(s.states, start, end, make([]syntax.LineState, len(newLines))...)

	s.stats.Edits++
	s.stats.LastRetokenized = 0

	insertedEnd := start + len(newLines)
	var updates []LineUpdate
	for i := start; i < len(s.lines); i++ {
		if i >= insertedEnd && in == boundary {
			break
		}

		prev := s.states[i]
		tokens, out := s.tokenizer.TokenizeLine(s.lines[i], in)
		s.tokens[i] = tokens
		s.states[i] = out

		s.stats.Retokenized++
		s.stats.LastRetokenized++
		updates = append(updates, s.update(i))

		if i >= insertedEnd {
			boundary = prev
		}
		in = out
	}

	return updates, nil
}

// LineCount returns the number of lines in the document.
func (s *Scheduler) LineCount() int {
	return len(s.lines)
}

// Line returns the text of line i.
func (s *Scheduler) Line(i int) (string, error) {
	if err := s.checkLine(i); err != nil {
		return "", err
	}
	return s.lines[i], nil
}

// Text returns a copy of all line texts.
func (s *Scheduler) Text() []string {
	return slices.Clone(s.lines)
}

// Tokens returns the cached tokens of line i, stamped with the line index.
func (s *Scheduler) Tokens(i int) ([]syntax.Token, error) {
	if err := s.checkLine(i); err != nil {
		return nil, err
	}
	return s.stamped(i), nil
}

// State returns the outgoing LineState of line i.
func (s *Scheduler) State(i int) (syntax.LineState, error) {
	if err := s.checkLine(i); err != nil {
		return syntax.StateNormal, err
	}
	return s.states[i], nil
}

// States returns a copy of every line's outgoing state.
func (s *Scheduler) States() []syntax.LineState {
	return slices.Clone(s.states)
}

// FinalState returns the outgoing state of the last line, StateNormal for an empty document.
func (s *Scheduler) FinalState() syntax.LineState {
	return s.stateBefore(len(s.states))
}

// Scan calls fn with the cached text and tokens of every line from from on. The token
// slices are the cache itself and their Line fields are not stamped: fn must not
// modify or retain them.
func (s *Scheduler) Scan(from int, fn func(i int, text string, tokens []syntax.Token)) {
	for i := max(from, 0); i < len(s.lines); i++ {
		fn(i, s.lines[i], s.tokens[i])
	}
}

// Lines returns a snapshot of the tokens of every line.
func (s *Scheduler) Lines() [][]syntax.Token {
	out := make([][]syntax.Token, len(s.tokens))
	for i := range s.tokens {
		out[i] = s.stamped(i)
	}
	return out
}

// Stats returns the work counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

func (s *Scheduler) stateBefore(i int) syntax.LineState {
	if i == 0 {
		return syntax.StateNormal
	}
	return s.states[i-1]
}

func (s *Scheduler) checkLine(i int) error {
	if i < 0 || i >= len(s.lines) {
		return fmt.Errorf("line %d of %d: %w", i, len(s.lines), ErrOutOfRange)
	}
	return nil
}

// stamped returns a copy of line i's tokens with Line set.
// Line fields in the cache go stale when lines shift, so callers only ever see copies.
func (s *Scheduler) stamped(i int) []syntax.Token {
	tokens := slices.Clone(s.tokens[i])
	syntax.StampLine(tokens, i)
	return tokens
}

func (s *Scheduler) update(i int) LineUpdate {
	tokens := s.stamped(i)
	return LineUpdate{
		Line:   i,
		Tokens: tokens,
		Styles: Instructions(tokens, s.theme),
	}
}
