package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/brackets"
	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/document"
)

type matchFlags struct {
	format string
}

// bracketJSON is a bracket with its 1-based LINE:COL position.
type bracketJSON struct {
	Char     string `json:"char"`
	Position string `json:"position"`
}

type matchOutput struct {
	Bracket *bracketJSON `json:"bracket,omitempty"`
	Partner *bracketJSON `json:"partner,omitempty"`
	Found   bool         `json:"found"`
	Problem string       `json:"problem,omitempty"`
}

func newMatchCommand(globals *globalFlags) *cobra.Command {
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match <file> <line:col>",
		Short: "Find the partner of the bracket at a position",
		Long: `Find the bracket at or just before LINE:COL (both 1-based) and
print its partner. Brackets inside strings and comments are ignored.

Examples:
  pyhl match app.py 12:9
  pyhl match --format json app.py 12:9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], args[1], globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runMatch(cmd *cobra.Command, path, at string, globals *globalFlags, flags *matchFlags) error {
	format, err := parseListingFormat(flags.format)
	if err != nil {
		return err
	}
	pos, err := parsePosition(at)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, globals, nil)
	if err != nil {
		return err
	}

	lines, err := readSource(s.ctx, cmd, path)
	if err != nil {
		return err
	}

	doc, _ := document.NewWorkspace(s.documentOptions(nil)).Open(path, lines)
	m, err := doc.MatchFor(pos)
	if err != nil {
		return fmt.Errorf("%w: %s in %s: %w", errUsage, at, path, err)
	}

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newMatchOutput(m)); err != nil {
			return fmt.Errorf("encode match: %w", err)
		}
		return nil
	}
	return writeMatchText(out, s.styles(out), at, m)
}

func newMatchOutput(m brackets.Match) matchOutput {
	var out matchOutput
	if !m.HasBracket() {
		return out
	}
	out.Bracket = bracketOf(m.Bracket)
	if m.Found {
		out.Found = true
		out.Partner = bracketOf(m.Partner)
	}
	if m.Diagnostic != nil {
		out.Problem = describeBracketProblem(m.Diagnostic)
	}
	return out
}

// describeBracketProblem adds the other bracket's location to a mismatch message.
func describeBracketProblem(d *brackets.Diagnostic) string {
	if d.Other == nil {
		return d.Message()
	}
	return d.Message() + " at " + formatPosition(d.Other.Position())
}

func bracketOf(e brackets.Entry) *bracketJSON {
	return &bracketJSON{Char: string(e.Char), Position: formatPosition(e.Position())}
}

func writeMatchText(w io.Writer, styles *pretty.Styles, at string, m brackets.Match) error {
	var line string
	switch {
	case !m.HasBracket():
		line = styles.Dim.Render("no bracket at " + at)
	case m.Found:
		line = fmt.Sprintf("%q %s -> %q %s",
			m.Bracket.Char, styles.Location.Render(formatPosition(m.Bracket.Position())),
			m.Partner.Char, styles.Location.Render(formatPosition(m.Partner.Position())))
	case m.Diagnostic != nil:
		line = fmt.Sprintf("%q %s: %s",
			m.Bracket.Char, styles.Location.Render(formatPosition(m.Bracket.Position())),
			styles.Error.Render(describeBracketProblem(m.Diagnostic)))
	default:
		line = fmt.Sprintf("%q %s: no partner", m.Bracket.Char, formatPosition(m.Bracket.Position()))
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("write match: %w", err)
	}
	return nil
}
