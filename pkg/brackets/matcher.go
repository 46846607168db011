// Package brackets pairs bracket tokens and answers cursor-relative match queries.
package brackets

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/yaklabco/pyhl/pkg/syntax"
)

// ErrOutOfRange is returned for positions outside the document.
var ErrOutOfRange = errors.New("out of range")

// Entry is a bracket character at a document position.
type Entry struct {
	Char   rune `json:"char"`
	Line   int  `json:"line"`
	Column int  `json:"column"`
}

// Position returns the entry's position.
func (e Entry) Position() syntax.Position {
	return syntax.Position{Line: e.Line, Column: e.Column}
}

// IsOpen reports whether the entry is an opening bracket.
func (e Entry) IsOpen() bool {
	return syntax.IsOpenBracket(e.Char)
}

// DiagnosticKind classifies a bracket problem.
type DiagnosticKind uint8

// Diagnostic kinds.
const (
	// DiagMismatch marks a closer and the opener it popped when they are not partners.
	DiagMismatch DiagnosticKind = iota + 1
	// DiagUnmatched marks a closer with nothing open.
	DiagUnmatched
	// DiagUnclosed marks an opener still open at the end of the document.
	DiagUnclosed
)

// String returns the kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagMismatch:
		return "mismatched"
	case DiagUnmatched:
		return "unmatched"
	case DiagUnclosed:
		return "unclosed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a non-fatal bracket error.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	At   Entry          `json:"at"`

	// Other is the bracket on the other side of a mismatch.
	Other *Entry `json:"other,omitempty"`
}

// Message describes the problem without locations; callers place At and Other in
// their own coordinates.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case DiagMismatch:
		if d.Other != nil {
			return fmt.Sprintf("mismatched bracket %q pairs with %q", d.At.Char, d.Other.Char)
		}
		return fmt.Sprintf("mismatched bracket %q", d.At.Char)
	case DiagUnmatched:
		return fmt.Sprintf("unmatched closing bracket %q", d.At.Char)
	case DiagUnclosed:
		return fmt.Sprintf("unclosed bracket %q", d.At.Char)
	default:
		return fmt.Sprintf("bracket %q", d.At.Char)
	}
}

// Match is the answer to a MatchFor query.
type Match struct {
	// Bracket is the bracket selected for the cursor. Zero when no bracket is near.
	Bracket Entry `json:"bracket"`

	// Partner is the paired bracket, valid only when Found is true.
	Partner Entry `json:"partner"`

	Found bool `json:"found"`

	// Diagnostic is set when Bracket is mismatched, unmatched or unclosed.
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// HasBracket reports whether a bracket was selected for the cursor.
func (m Match) HasBracket() bool {
	return m.Bracket.Char != 0
}

// Depths counts open brackets per category.
type Depths struct {
	Round  int `json:"round"`
	Square int `json:"square"`
	Curly  int `json:"curly"`
}

// Total returns the sum over all categories.
func (d Depths) Total() int {
	return d.Round + d.Square + d.Curly
}

func (d *Depths) add(r rune, delta int) {
	switch r {
	case '(', ')':
		d.Round += delta
	case '[', ']':
		d.Square += delta
	case '{', '}':
		d.Curly += delta
	}
}

// Lines is a read-only view of a tokenized document.
type Lines interface {
	LineCount() int

	// Scan calls fn for every line from from on. fn must not modify or retain tokens.
	Scan(from int, fn func(i int, text string, tokens []syntax.Token))
}

type sliceLines struct {
	lines  []string
	tokens [][]syntax.Token
}

func (s sliceLines) LineCount() int { return len(s.tokens) }

func (s sliceLines) Scan(from int, fn func(int, string, []syntax.Token)) {
	for i := from; i < len(s.tokens); i++ {
		var text string
		if i < len(s.lines) {
			text = s.lines[i]
		}
		fn(i, text, s.tokens[i])
	}
}

// diagRef is a diagnostic by entry index; other is -1 when there is no other bracket.
type diagRef struct {
	kind      DiagnosticKind
	at, other int
}

// Matcher holds the bracket pairing of one document version.
// It is not safe for concurrent use.
//
// For every line it remembers where the line's entries start and which openers were
// still open when the line began, so Update can resume the pairing pass at an edited
// line instead of at the top of the document.
type Matcher struct {
	version  uint64
	lineLens []int

	entries []Entry // document order
	index   map[syntax.Position]int
	partner []int
	refs    []diagRef // sorted by at

	lineStart []int    // first entry index of each line, plus a sentinel
	stackAt   [][]int  // open entries at the start of each line, plus the end
	depthsAt  []Depths // open counts at the start of each line, plus the end

	depths Depths
}

// New returns an empty matcher. The zero Matcher is also ready to use.
func New() *Matcher {
	return &Matcher{index: make(map[syntax.Position]int)}
}

// Rebuild recomputes all pairs from the token stream of a document version.
// lines supplies the text the tokens index into.
func (m *Matcher) Rebuild(version uint64, lines []string, tokens [][]syntax.Token) {
	m.reset()
	m.Update(version, 0, sliceLines{lines: lines, tokens: tokens})
}

// Update brings the pairing up to date with src after an edit whose first changed
// line is from. Lines before from must be unchanged since the previous Update or
// Rebuild; everything from there down is rescanned.
//
// Openers share one stack so crossing pairs such as "(a[b)c]" are detected: a closer
// pops the most recent opener and, when the two are not partners, both are flagged.
func (m *Matcher) Update(version uint64, from int, src Lines) {
	if len(m.lineStart) == 0 {
		m.reset()
	}
	from = max(0, min(from, len(m.lineStart)-1, src.LineCount()))
	m.version = version

	snapshot := m.stackAt[from]
	stack := slices.Clone(snapshot)
	depths := m.depthsAt[from]
	m.truncate(from, stack)

	src.Scan(from, func(li int, text string, toks []syntax.Token) {
		m.lineStart = append(m.lineStart, len(m.entries))
		m.stackAt = append(m.stackAt, snapshot)
		m.depthsAt = append(m.depthsAt, depths)
		m.lineLens = append(m.lineLens, len(text))

		changed := false
		for _, tok := range toks {
			if tok.Start < 0 || tok.End > len(text) {
				continue
			}

			switch tok.Kind {
			case syntax.KindCollection:
				if tok.Len() != 2 {
					continue
				}
				open := m.add(Entry{Char: rune(text[tok.Start]), Line: li, Column: tok.Start})
				closing := m.add(Entry{Char: rune(text[tok.Start+1]), Line: li, Column: tok.Start + 1})
				m.pair(open, closing)

			case syntax.KindBracket:
				idx := m.add(Entry{Char: rune(text[tok.Start]), Line: li, Column: tok.Start})
				r := m.entries[idx].Char

				if syntax.IsOpenBracket(r) {
					stack = append(stack, idx)
					depths.add(r, 1)
					changed = true
					continue
				}

				if len(stack) == 0 {
					m.diagnose(DiagUnmatched, idx, -1)
					continue
				}

				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				depths.add(m.entries[top].Char, -1)
				changed = true

				if partner, _ := syntax.Partner(m.entries[top].Char); partner == r {
					m.pair(top, idx)
				} else {
					m.diagnose(DiagMismatch, idx, top)
					m.diagnose(DiagMismatch, top, idx)
				}
			}
		}
		if changed {
			snapshot = slices.Clone(stack)
		}
	})

	m.lineStart = append(m.lineStart, len(m.entries))
	m.stackAt = append(m.stackAt, snapshot)
	m.depthsAt = append(m.depthsAt, depths)
	m.depths = depths

	for _, idx := range stack {
		m.diagnose(DiagUnclosed, idx, -1)
	}
	slices.SortStableFunc(m.refs, func(a, b diagRef) int { return a.at - b.at })
}

func (m *Matcher) reset() {
	m.lineLens = m.lineLens[:0]
	m.entries = m.entries[:0]
	m.partner = m.partner[:0]
	m.refs = m.refs[:0]
	m.lineStart = append(m.lineStart[:0], 0)
	m.stackAt = append(m.stackAt[:0], nil)
	m.depthsAt = append(m.depthsAt[:0], Depths{})
	m.depths = Depths{}
	if m.index == nil {
		m.index = make(map[syntax.Position]int)
	}
	clear(m.index)
}

// truncate drops every entry from line from on, and the pairs and diagnostics that
// involve them or the openers in open, which are still waiting for a closer.
func (m *Matcher) truncate(from int, open []int) {
	cut := m.lineStart[from]
	for _, e := range m.entries[cut:] {
		delete(m.index, e.Position())
	}
	m.entries = m.entries[:cut]
	m.partner = m.partner[:cut]
	for _, idx := range open {
		m.partner[idx] = -1
	}
	m.refs = slices.DeleteFunc(m.refs, func(r diagRef) bool {
		return r.at >= cut || r.other >= cut || slices.Contains(open, r.at)
	})

	m.lineLens = m.lineLens[:from]
	m.lineStart = m.lineStart[:from]
	m.stackAt = m.stackAt[:from]
	m.depthsAt = m.depthsAt[:from]
}

// MatchFor finds the bracket pair relevant to the cursor: the bracket at the cursor,
// else the bracket just before it, else the nearest enclosing opener.
// A Match without a bracket means nothing is near; it is not an error.
func (m *Matcher) MatchFor(pos syntax.Position) (Match, error) {
	if pos.Line < 0 || pos.Line >= len(m.lineLens) || pos.Column < 0 || pos.Column > m.lineLens[pos.Line] {
		return Match{}, fmt.Errorf("position %s: %w", pos, ErrOutOfRange)
	}

	if idx, ok := m.index[pos]; ok {
		return m.matchAt(idx), nil
	}
	if pos.Column > 0 {
		if idx, ok := m.index[syntax.Position{Line: pos.Line, Column: pos.Column - 1}]; ok {
			return m.matchAt(idx), nil
		}
	}

	// Walk backwards from the cursor skipping balanced groups.
	first := sort.Search(len(m.entries), func(i int) bool {
		return !m.entries[i].Position().Before(pos)
	})
	depth := 0
	for i := first - 1; i >= 0; i-- {
		if !m.entries[i].IsOpen() {
			depth++
			continue
		}
		if depth == 0 {
			return m.matchAt(i), nil
		}
		depth--
	}

	return Match{}, nil
}

// Diagnostics returns every bracket problem in document order.
func (m *Matcher) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(m.refs))
	for i, r := range m.refs {
		out[i] = m.diagnostic(r)
	}
	return out
}

// Unmatched returns the number of openers left open per category.
func (m *Matcher) Unmatched() Depths {
	return m.depths
}

// Entries returns every bracket in document order.
func (m *Matcher) Entries() []Entry {
	return slices.Clone(m.entries)
}

// Version returns the document version of the last Rebuild.
func (m *Matcher) Version() uint64 {
	return m.version
}

func (m *Matcher) add(e Entry) int {
	idx := len(m.entries)
	m.entries = append(m.entries, e)
	m.partner = append(m.partner, -1)
	m.index[e.Position()] = idx
	return idx
}

func (m *Matcher) pair(a, b int) {
	m.partner[a] = b
	m.partner[b] = a
}

func (m *Matcher) diagnose(kind DiagnosticKind, at, other int) {
	m.refs = append(m.refs, diagRef{kind: kind, at: at, other: other})
}

func (m *Matcher) diagnostic(r diagRef) Diagnostic {
	d := Diagnostic{Kind: r.kind, At: m.entries[r.at]}
	if r.other >= 0 {
		o := m.entries[r.other]
		d.Other = &o
	}
	return d
}

func (m *Matcher) matchAt(idx int) Match {
	match := Match{Bracket: m.entries[idx]}
	if i, ok := slices.BinarySearchFunc(m.refs, idx, func(r diagRef, at int) int { return r.at - at }); ok {
		diag := m.diagnostic(m.refs[i])
		match.Diagnostic = &diag
	}
	if p := m.partner[idx]; p >= 0 {
		match.Partner = m.entries[p]
		match.Found = true
	}
	return match
}
