package document

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaklabco/pyhl/pkg/highlight"
)

// DiffEdit returns the single edit that turns old into updated: the lines between their
// common prefix and common suffix. Identical snapshots yield a no-op edit.
func DiffEdit(old, updated []string) highlight.EditRange {
	prefix, suffix := commonLines(old, updated)

	return highlight.EditRange{
		StartLine: prefix,
		EndLine:   len(old) - suffix,
		Lines:     append([]string{}, updated[prefix:len(updated)-suffix]...),
	}
}

// commonLines counts the unchanged lines at both ends using a line-mode diff.
func commonLines(old, updated []string) (int, int) {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(joinLines(old), joinLines(updated))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	if len(diffs) == 0 {
		return len(old), 0
	}

	prefix, suffix := 0, 0
	if diffs[0].Type == diffmatchpatch.DiffEqual {
		prefix = strings.Count(diffs[0].Text, "\n")
	}
	if len(diffs) > 1 && diffs[len(diffs)-1].Type == diffmatchpatch.DiffEqual {
		suffix = strings.Count(diffs[len(diffs)-1].Text, "\n")
	}

	shortest := min(len(old), len(updated))
	prefix = min(prefix, shortest)
	suffix = min(suffix, shortest-prefix)
	return prefix, suffix
}

// joinLines terminates every line with a newline so the diff sees whole lines.
func joinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
