package syntax

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/pyhl/pkg/vocab"
)

// Precedence values for the default table, highest wins.
const (
	PrecContinuation = 120 - iota*10
	PrecComment
	PrecString
	PrecNumber
	PrecBoolean
	PrecCollection
	PrecKeyword
	PrecBuiltin
	PrecOperator
	PrecBracket
	PrecIdentifier
	PrecWhitespace
)

// Match is the result of a successful matcher.
type Match struct {
	// End is the exclusive byte offset where the match stops. Always > the scan position.
	End int

	// State is the line state after the match.
	State LineState
}

// Matcher tries to match text starting at pos given the current line state.
type Matcher func(line string, pos int, state LineState) (Match, bool)

// Entry is a single row of a pattern table.
type Entry struct {
	Name       string
	Kind       Kind
	Precedence int
	Match      Matcher
}

// Table is an ordered list of entries evaluated first-match-wins.
// A Table is immutable after construction.
type Table struct {
	entries []Entry
}

// NewTable builds a table from entries, ordered by descending precedence.
// Entries with equal precedence keep their relative order.
func NewTable(entries ...Entry) *Table {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.Precedence - a.Precedence
	})
	return &Table{entries: sorted}
}

// PythonTable returns the default Python pattern table for a vocabulary.
func PythonTable(v *vocab.Vocabulary) *Table {
	if v == nil {
		v = vocab.Python()
	}

	return NewTable(
		Entry{Name: "string-continuation", Kind: KindString, Precedence: PrecContinuation, Match: matchContinuation},
		Entry{Name: "comment", Kind: KindComment, Precedence: PrecComment, Match: matchComment},
		Entry{Name: "string", Kind: KindString, Precedence: PrecString, Match: matchString},
		Entry{Name: "number", Kind: KindNumber, Precedence: PrecNumber, Match: matchNumber},
		Entry{Name: "boolean", Kind: KindBoolean, Precedence: PrecBoolean, Match: matchWord(isBooleanLiteral)},
		Entry{Name: "collection", Kind: KindCollection, Precedence: PrecCollection, Match: matchCollection},
		Entry{Name: "keyword", Kind: KindKeyword, Precedence: PrecKeyword, Match: matchWord(v.IsKeyword)},
		Entry{Name: "builtin", Kind: KindBuiltin, Precedence: PrecBuiltin, Match: matchWord(v.IsBuiltin)},
		Entry{Name: "operator", Kind: KindOperator, Precedence: PrecOperator, Match: matchOperator},
		Entry{Name: "bracket", Kind: KindBracket, Precedence: PrecBracket, Match: matchBracket},
		Entry{Name: "identifier", Kind: KindIdentifier, Precedence: PrecIdentifier, Match: matchIdentifier},
		Entry{Name: "whitespace", Kind: KindWhitespace, Precedence: PrecWhitespace, Match: matchWhitespace},
	)
}

// Entries returns a copy of the table rows in evaluation order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// match evaluates the table at pos. Matches that do not advance are ignored.
func (t *Table) match(line string, pos int, state LineState) (Kind, Match, bool) {
	for _, e := range t.entries {
		if m, ok := e.Match(line, pos, state); ok && m.End > pos && m.End <= len(line) {
			return e.Kind, m, true
		}
	}
	return KindUnknown, Match{}, false
}

func matchContinuation(line string, pos int, state LineState) (Match, bool) {
	if !state.Open() {
		return Match{}, false
	}
	end, closed := scanTripleBody(line, pos, state.delimiter())
	if closed {
		return Match{End: end, State: StateNormal}, true
	}
	return Match{End: len(line), State: state}, true
}

func matchComment(line string, pos int, state LineState) (Match, bool) {
	if line[pos] != '#' {
		return Match{}, false
	}
	return Match{End: len(line), State: state}, true
}

func matchString(line string, pos int, state LineState) (Match, bool) {
	if precededByIdent(line, pos) {
		return Match{}, false
	}

	quoteAt := pos + stringPrefixLen(line, pos)
	if quoteAt >= len(line) || (line[quoteAt] != '\'' && line[quoteAt] != '"') {
		return Match{}, false
	}
	quote := line[quoteAt]

	if strings.HasPrefix(line[quoteAt:], strings.Repeat(string(quote), 3)) {
		open := stateForQuote(quote)
		end, closed := scanTripleBody(line, quoteAt+3, open.delimiter())
		if closed {
			return Match{End: end, State: state}, true
		}
		return Match{End: len(line), State: open}, true
	}

	// Single-quoted strings never span lines; an unterminated one ends at end of line.
	for i := quoteAt + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return Match{End: i + 1, State: state}, true
		}
	}
	return Match{End: len(line), State: state}, true
}

// stringPrefixLen returns the length of a valid string prefix (r, b, u, f, rb, br, fr, rf)
// at pos, or 0 if there is none.
func stringPrefixLen(line string, pos int) int {
	end := pos
	for end < len(line) && end-pos < 3 && strings.IndexByte("rRbBuUfF", line[end]) >= 0 {
		end++
	}
	switch strings.ToLower(line[pos:end]) {
	case "r", "b", "u", "f", "rb", "br", "fr", "rf":
		return end - pos
	default:
		return 0
	}
}

// scanTripleBody scans from pos for delim, honouring backslash escapes.
// It returns the offset just past delim, or len(line) if delim is not found.
func scanTripleBody(line string, pos int, delim string) (int, bool) {
	for i := pos; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(line[i:], delim) {
			return i + len(delim), true
		}
	}
	return len(line), false
}

//nolint:gochecknoglobals // Compiled once, read-only.
var numberPattern = regexp.MustCompile(
	`^(?:0[xX](?:_?[0-9a-fA-F])+` +
		`|0[oO](?:_?[0-7])+` +
		`|0[bB](?:_?[01])+` +
		`|(?:(?:[0-9](?:_?[0-9])*)?\.[0-9](?:_?[0-9])*|[0-9](?:_?[0-9])*\.?)(?:[eE][+-]?[0-9](?:_?[0-9])*)?[jJ]?)`,
)

func matchNumber(line string, pos int, state LineState) (Match, bool) {
	if precededByIdent(line, pos) {
		return Match{}, false
	}
	loc := numberPattern.FindStringIndex(line[pos:])
	if loc == nil {
		return Match{}, false
	}
	end := pos + loc[1]
	if followedByIdent(line, end) {
		return Match{}, false
	}
	return Match{End: end, State: state}, true
}

func isBooleanLiteral(word string) bool {
	return word == "True" || word == "False"
}

// matchWord matches a whole identifier-delimited word accepted by accept.
func matchWord(accept func(string) bool) Matcher {
	return func(line string, pos int, state LineState) (Match, bool) {
		if precededByIdent(line, pos) {
			return Match{}, false
		}
		end := identEnd(line, pos)
		if end == pos || !accept(line[pos:end]) {
			return Match{}, false
		}
		return Match{End: end, State: state}, true
	}
}

func matchCollection(line string, pos int, state LineState) (Match, bool) {
	if pos+1 >= len(line) {
		return Match{}, false
	}
	closer, ok := bracketPartner(line[pos])
	if !ok || line[pos+1] != closer {
		return Match{}, false
	}
	return Match{End: pos + 2, State: state}, true
}

// operators is ordered longest first so the first prefix match is the longest.
//
//nolint:gochecknoglobals // Read-only lookup table.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", ":=", "==", "!=", "<=", ">=", "**", "//", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "<", ">", "=", "!", ".", ",", ":", ";",
}

func matchOperator(line string, pos int, state LineState) (Match, bool) {
	for _, op := range operators {
		if strings.HasPrefix(line[pos:], op) {
			return Match{End: pos + len(op), State: state}, true
		}
	}
	return Match{}, false
}

func matchBracket(line string, pos int, state LineState) (Match, bool) {
	if !IsBracket(rune(line[pos])) {
		return Match{}, false
	}
	return Match{End: pos + 1, State: state}, true
}

func matchIdentifier(line string, pos int, state LineState) (Match, bool) {
	end := identEnd(line, pos)
	if end == pos {
		return Match{}, false
	}
	return Match{End: end, State: state}, true
}

func matchWhitespace(line string, pos int, state LineState) (Match, bool) {
	end := pos
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	if end == pos {
		return Match{}, false
	}
	return Match{End: end, State: state}, true
}

// IsIdentRune reports whether r may appear in an identifier.
func IsIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// identEnd returns the end of the maximal identifier run starting at pos.
func identEnd(line string, pos int) int {
	end := pos
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if r == utf8.RuneError || !IsIdentRune(r) {
			break
		}
		end += size
	}
	return end
}

func precededByIdent(line string, pos int) bool {
	if pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(line[:pos])
	return r != utf8.RuneError && IsIdentRune(r)
}

func followedByIdent(line string, end int) bool {
	if end >= len(line) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line[end:])
	return r != utf8.RuneError && IsIdentRune(r)
}

// IsBracket reports whether r is one of ()[]{}.
func IsBracket(r rune) bool {
	return IsOpenBracket(r) || IsCloseBracket(r)
}

// IsOpenBracket reports whether r is one of ([{.
func IsOpenBracket(r rune) bool {
	return r == '(' || r == '[' || r == '{'
}

// IsCloseBracket reports whether r is one of )]}.
func IsCloseBracket(r rune) bool {
	return r == ')' || r == ']' || r == '}'
}

// Partner returns the matching bracket for r, in either direction.
func Partner(r rune) (rune, bool) {
	switch r {
	case '(':
		return ')', true
	case ')':
		return '(', true
	case '[':
		return ']', true
	case ']':
		return '[', true
	case '{':
		return '}', true
	case '}':
		return '{', true
	default:
		return 0, false
	}
}

// bracketPartner returns the closer for an opening bracket byte.
func bracketPartner(b byte) (byte, bool) {
	if !IsOpenBracket(rune(b)) {
		return 0, false
	}
	p, _ := Partner(rune(b))
	return byte(p), true
}

// IsUnterminatedString reports whether tok is a single-quoted string missing its closing
// quote. in is the line's incoming state. Triple-quoted strings are reported through the
// line state instead.
func IsUnterminatedString(line string, tok Token, in LineState) bool {
	if tok.Kind != KindString || (tok.Start == 0 && in.Open()) {
		return false
	}

	text := tok.Text(line)
	if text == "" {
		return false
	}
	body := text[stringPrefixLen(text, 0):]
	if body == "" {
		return false
	}
	quote := body[0]
	if strings.HasPrefix(body, strings.Repeat(string(quote), 3)) {
		return false
	}
	if len(body) < 2 || body[len(body)-1] != quote {
		return true
	}

	// An odd run of backslashes escapes the final quote.
	backslashes := 0
	for i := len(body) - 2; i > 0 && body[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}
