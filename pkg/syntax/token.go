// Package syntax classifies Python source lines into lexical tokens.
//
// Tokenization is line oriented: each line is scanned with the LineState left
// by the previous line, so any single line can be retokenized in isolation.
package syntax

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind uint8

// Token kinds. Every byte of a line belongs to exactly one token.
const (
	KindUnknown Kind = iota
	KindKeyword
	KindBuiltin
	KindString
	KindNumber
	KindBoolean
	KindCollection // empty literal pair: (), [], {}
	KindComment
	KindOperator
	KindIdentifier
	KindWhitespace
	KindBracket

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindUnknown:    "unknown",
	KindKeyword:    "keyword",
	KindBuiltin:    "builtin",
	KindString:     "string",
	KindNumber:     "number",
	KindBoolean:    "boolean",
	KindCollection: "collection",
	KindComment:    "comment",
	KindOperator:   "operator",
	KindIdentifier: "identifier",
	KindWhitespace: "whitespace",
	KindBracket:    "bracket",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind converts a kind name (case-insensitive) back into a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown token kind %q", name)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}

// Token is a classified span of a single line.
type Token struct {
	// Kind classifies the span.
	Kind Kind `json:"kind"`

	// Start is the byte offset within the line where the token begins (inclusive).
	Start int `json:"start"`

	// End is the byte offset within the line where the token ends (exclusive).
	End int `json:"end"`

	// Line is the 0-based line index. TokenizeLine leaves it at zero;
	// callers that own a document stamp it.
	Line int `json:"line"`
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Contains reports whether the byte column lies inside the token.
func (t Token) Contains(col int) bool {
	return col >= t.Start && col < t.End
}

// Text returns the token's text from its line, or "" for an invalid range.
func (t Token) Text(line string) string {
	if t.Start < 0 || t.End > len(line) || t.Start > t.End {
		return ""
	}
	return line[t.Start:t.End]
}

// ValidateTokens reports whether tokens partition a line of length lineLen:
// contiguous, non-overlapping, non-empty and covering [0, lineLen).
func ValidateTokens(tokens []Token, lineLen int) bool {
	if len(tokens) == 0 {
		return lineLen == 0
	}

	if tokens[0].Start != 0 || tokens[len(tokens)-1].End != lineLen {
		return false
	}

	for i, tok := range tokens {
		if tok.End <= tok.Start {
			return false
		}
		if i > 0 && tok.Start != tokens[i-1].End {
			return false
		}
	}

	return true
}
