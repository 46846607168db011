package highlight

import (
	"strings"
)

// LineSource is the document as seen by the scheduler on a full load.
type LineSource interface {
	LineCount() int
	Line(i int) string
}

// Lines is a LineSource over a slice.
type Lines []string

// LineCount implements LineSource.
func (l Lines) LineCount() int { return len(l) }

// Line implements LineSource.
func (l Lines) Line(i int) string { return l[i] }

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
// Empty text is a document with a single empty line.
func SplitLines(text string) Lines {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// EditRange describes a line-level edit: the old lines [StartLine, EndLine) are
// replaced by the new lines.
type EditRange struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// InsertedText is split on "\n" into the new lines. Empty text means no new lines.
	InsertedText string `json:"inserted_text,omitempty"`

	// Lines, when non-nil, is used instead of InsertedText.
	Lines []string `json:"lines,omitempty"`
}

// NewLines returns the lines the edit inserts.
func (e EditRange) NewLines() []string {
	if e.Lines != nil {
		return e.Lines
	}
	if e.InsertedText == "" {
		return nil
	}
	return strings.Split(e.InsertedText, "\n")
}

// IsNoop reports whether the edit changes nothing.
func (e EditRange) IsNoop() bool {
	return e.StartLine == e.EndLine && len(e.NewLines()) == 0
}

// ReplaceLine builds an edit replacing line i with text.
func ReplaceLine(i int, text string) EditRange {
	return EditRange{StartLine: i, EndLine: i + 1, Lines: []string{text}}
}

// InsertLines builds an edit inserting lines before line at.
func InsertLines(at int, lines ...string) EditRange {
	return EditRange{StartLine: at, EndLine: at, Lines: lines}
}

// DeleteLines builds an edit removing lines [start, end).
func DeleteLines(start, end int) EditRange {
	return EditRange{StartLine: start, EndLine: end, Lines: []string{}}
}
