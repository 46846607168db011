package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

// stdinName is the path argument that selects standard input.
const stdinName = "-"

// errUsage marks errors caused by bad arguments rather than bad input.
var errUsage = errors.New("invalid usage")

// parseListingFormat parses --format for commands that print listings rather
// than diagnostics, which have no annotation form.
func parseListingFormat(s string) (config.OutputFormat, error) {
	format, err := config.ParseOutputFormat(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUsage, err)
	}
	if format == config.FormatGitHub {
		return "", fmt.Errorf("%w: format %q is only supported by check", errUsage, s)
	}
	return format, nil
}

// readSource reads the lines of path, or of standard input when path is "-".
func readSource(ctx context.Context, cmd *cobra.Command, path string) (highlight.Lines, error) {
	if path == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return highlight.SplitLines(string(data)), nil
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return highlight.SplitLines(string(content)), nil
}

// parsePosition parses "LINE:COL" with both parts 1-based, the way diagnostics print
// them, and returns the 0-based position.
func parsePosition(s string) (syntax.Position, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return syntax.Position{}, fmt.Errorf("%w: position %q is not LINE:COL", errUsage, s)
	}

	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return syntax.Position{}, fmt.Errorf("%w: line %q must be a positive number", errUsage, lineStr)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return syntax.Position{}, fmt.Errorf("%w: column %q must be a positive number", errUsage, colStr)
	}

	return syntax.Position{Line: line - 1, Column: col - 1}, nil
}

// formatPosition is the inverse of parsePosition.
func formatPosition(p syntax.Position) string {
	return p.Location()
}
