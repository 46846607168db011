package syntax

import (
	"unicode/utf8"

	"github.com/yaklabco/pyhl/pkg/vocab"
)

// Tokenizer turns lines into tokens using a pattern table.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	table *Table
}

// NewTokenizer creates a tokenizer with the default Python table for v.
// A nil vocabulary selects vocab.Python().
func NewTokenizer(v *vocab.Vocabulary) *Tokenizer {
	return &Tokenizer{table: PythonTable(v)}
}

// NewTokenizerWithTable creates a tokenizer over a custom pattern table.
func NewTokenizerWithTable(table *Table) *Tokenizer {
	return &Tokenizer{table: table}
}

// Table returns the tokenizer's pattern table.
func (tz *Tokenizer) Table() *Table {
	return tz.table
}

// TokenizeLine scans text with the incoming state and returns the tokens and the
// outgoing state. The result depends only on (text, in).
//
// Positions where no table entry matches produce a one-rune Unknown token, so the
// scan always advances and finishes in at most len(text) steps.
func (tz *Tokenizer) TokenizeLine(text string, in LineState) ([]Token, LineState) {
	const avgTokenLen = 4
	tokens := make([]Token, 0, len(text)/avgTokenLen+1)
	state := in

	pos := 0
	for pos < len(text) {
		kind, m, ok := tz.table.match(text, pos, state)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[pos:])
			tokens = append(tokens, Token{Kind: KindUnknown, Start: pos, End: pos + size})
			pos += size
			continue
		}

		tokens = append(tokens, Token{Kind: kind, Start: pos, End: m.End})
		pos = m.End
		state = m.State
	}

	return tokens, state
}

// TokenizeLines tokenizes a whole snapshot from StateNormal, stamping line indices.
// It returns the tokens per line and the outgoing state of every line.
func (tz *Tokenizer) TokenizeLines(lines []string) ([][]Token, []LineState) {
	tokens := make([][]Token, len(lines))
	states := make([]LineState, len(lines))

	state := StateNormal
	for i, line := range lines {
		tokens[i], state = tz.TokenizeLine(line, state)
		StampLine(tokens[i], i)
		states[i] = state
	}

	return tokens, states
}

// StampLine sets the Line field of every token.
func StampLine(tokens []Token, line int) {
	for i := range tokens {
		tokens[i].Line = line
	}
}
