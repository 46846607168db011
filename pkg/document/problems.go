package document

import (
	"fmt"
	"slices"

	"github.com/yaklabco/pyhl/pkg/brackets"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// ProblemKind names a class of problem.
type ProblemKind string

// Problem kinds.
const (
	ProblemMismatchedBracket  ProblemKind = "mismatched-bracket"
	ProblemUnmatchedBracket   ProblemKind = "unmatched-bracket"
	ProblemUnclosedBracket    ProblemKind = "unclosed-bracket"
	ProblemUnterminatedString ProblemKind = "unterminated-string"
	ProblemUnterminatedTriple ProblemKind = "unterminated-triple-string"
)

// Problem is a non-fatal finding about the document text.
type Problem struct {
	Kind    ProblemKind     `json:"kind"`
	Pos     syntax.Position `json:"position"`
	Message string          `json:"message"`

	// Related is the other bracket of a mismatched pair.
	Related *syntax.Position `json:"related,omitempty"`
}

// Detail is Message followed by the 1-based location of Related, if any.
func (p Problem) Detail() string {
	if p.Related == nil {
		return p.Message
	}
	return p.Message + " at " + p.Related.Location()
}

// collectProblems reports bracket diagnostics, the cached unterminated strings and an
// open triple-quoted string in position order.
func collectProblems(sched *highlight.Scheduler, diags []brackets.Diagnostic, unterminated [][]int) []Problem {
	var out []Problem

	for _, d := range diags {
		p := Problem{
			Kind:    bracketProblemKind(d.Kind),
			Pos:     d.At.Position(),
			Message: d.Message(),
		}
		if d.Other != nil {
			related := d.Other.Position()
			p.Related = &related
		}
		out = append(out, p)
	}

	for line, cols := range unterminated {
		for _, col := range cols {
			out = append(out, Problem{
				Kind:    ProblemUnterminatedString,
				Pos:     syntax.Position{Line: line, Column: col},
				Message: "unterminated string literal",
			})
		}
	}

	if p, ok := openTriple(sched); ok {
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Problem) int {
		switch {
		case a.Pos.Before(b.Pos):
			return -1
		case b.Pos.Before(a.Pos):
			return 1
		default:
			return 0
		}
	})
	return out
}

// unterminatedStrings returns the start columns of single-quoted strings on line that
// are missing their closing quote.
func unterminatedStrings(line string, tokens []syntax.Token, in syntax.LineState) []int {
	var cols []int
	for _, tok := range tokens {
		if syntax.IsUnterminatedString(line, tok, in) {
			cols = append(cols, tok.Start)
		}
	}
	return cols
}

// openTriple locates the opening quote of a triple-quoted string still open at the end.
func openTriple(sched *highlight.Scheduler) (Problem, bool) {
	final := sched.FinalState()
	if !final.Open() {
		return Problem{}, false
	}

	// Continuation lines hold a single string token starting at column 0 (or none when
	// empty); the opening line's last token starts after the quote prefix.
	line := sched.LineCount() - 1
	for line > 0 && stateOf(sched, line-1).Open() && lastTokenStart(sched, line) == 0 {
		line--
	}
	return Problem{
		Kind:    ProblemUnterminatedTriple,
		Pos:     syntax.Position{Line: line, Column: lastTokenStart(sched, line)},
		Message: fmt.Sprintf("unterminated triple-quoted string (%s)", final),
	}, true
}

func stateOf(sched *highlight.Scheduler, i int) syntax.LineState {
	st, _ := sched.State(i)
	return st
}

func lastTokenStart(sched *highlight.Scheduler, i int) int {
	tokens, _ := sched.Tokens(i)
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].Start
}

func bracketProblemKind(k brackets.DiagnosticKind) ProblemKind {
	switch k {
	case brackets.DiagMismatch:
		return ProblemMismatchedBracket
	case brackets.DiagUnmatched:
		return ProblemUnmatchedBracket
	default:
		return ProblemUnclosedBracket
	}
}
