package brackets

import (
	"fmt"

	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// Insertion is one atomic text insertion: the typed opener and its closer together.
// An editor applies it as a single undo step.
type Insertion struct {
	At     syntax.Position `json:"at"`
	Text   string          `json:"text"`
	Cursor syntax.Position `json:"cursor"`
}

// AutoClose returns the insertion for typing opened at cursor. It reports false
// when opened is not an opening bracket.
func AutoClose(opened rune, cursor syntax.Position) (Insertion, bool) {
	if !syntax.IsOpenBracket(opened) {
		return Insertion{}, false
	}
	closer, _ := syntax.Partner(opened)

	return Insertion{
		At:     cursor,
		Text:   string([]rune{opened, closer}),
		Cursor: syntax.Position{Line: cursor.Line, Column: cursor.Column + 1},
	}, true
}

// Apply returns lineText with the insertion applied.
func (in Insertion) Apply(lineText string) (string, error) {
	if in.At.Column < 0 || in.At.Column > len(lineText) {
		return "", fmt.Errorf("insertion at %s on a line of %d bytes: %w", in.At, len(lineText), ErrOutOfRange)
	}
	return lineText[:in.At.Column] + in.Text + lineText[in.At.Column:], nil
}

// Edit converts the insertion into a single line replacement for the highlight scheduler.
func (in Insertion) Edit(lineText string) (highlight.EditRange, error) {
	text, err := in.Apply(lineText)
	if err != nil {
		return highlight.EditRange{}, err
	}
	return highlight.ReplaceLine(in.At.Line, text), nil
}
