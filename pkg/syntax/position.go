package syntax

import "fmt"

// Position is a 0-based line and byte column in a document.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether p sorts before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Location formats the position as 1-based "line:col", the form used in command output.
func (p Position) Location() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// String formats the position for a status bar: 1-based line, 0-based column.
func (p Position) String() string {
	return fmt.Sprintf("Line %d, Col %d", p.Line+1, p.Column)
}
