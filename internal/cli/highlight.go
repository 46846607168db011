package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/theme"
)

type highlightFlags struct {
	theme       string
	lineNumbers bool
	background  bool
	watch       bool
}

func newHighlightCommand(globals *globalFlags) *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight [files...]",
		Short: "Render Python files with syntax highlighting",
		Long: `Render Python files to the terminal using a theme.

With no files, or with "-", source is read from standard input.
With --watch, pyhl keeps running and reprints only the lines that
changed each time a file is saved.

Examples:
  pyhl highlight app.py                  # Render with the configured theme
  pyhl highlight -n --theme monokai *.py # Line numbers, Monokai theme
  cat app.py | pyhl highlight            # Read from stdin
  pyhl highlight --watch app.py          # Re-render changed lines on save`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.theme, "theme", "t", "", "theme name (see 'pyhl themes')")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "show line numbers")
	cmd.Flags().BoolVar(&flags.background, "background", false, "paint the theme's background color")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "watch files and re-render changed lines")

	return cmd
}

func runHighlight(cmd *cobra.Command, args []string, globals *globalFlags, flags *highlightFlags) error {
	if len(args) == 0 {
		args = []string{stdinName}
	}
	if flags.watch && slices.Contains(args, stdinName) {
		return fmt.Errorf("%w: --watch needs file arguments", errUsage)
	}

	s, err := newSession(cmd, globals, nil)
	if err != nil {
		return err
	}

	t, err := s.theme(flags.theme)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := theme.NewRenderer(out, t, theme.RenderOptions{
		Color:       s.colorEnabled(out),
		LineNumbers: flags.lineNumbers,
		Background:  flags.background,
	})
	styles := s.styles(out)
	workspace := document.NewWorkspace(s.documentOptions(t))

	docs := make([]*document.Document, 0, len(args))
	for i, path := range args {
		lines, err := readSource(s.ctx, cmd, path)
		if err != nil {
			return err
		}

		doc, res := workspace.Open(path, lines)
		docs = append(docs, doc)

		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, styles.Heading.Render(path))
		}

		shown := trimFinalNewline(lines)
		if err := renderer.Render(out, shown, stylesByLine(len(shown), res.Updates)); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
	}

	if !flags.watch {
		return nil
	}
	return watchDocuments(cmd, s, docs, renderer)
}

// stylesByLine indexes update styles by line.
func stylesByLine(n int, updates []highlight.LineUpdate) [][]highlight.StyleInstruction {
	out := make([][]highlight.StyleInstruction, n)
	for _, u := range updates {
		if u.Line >= 0 && u.Line < n {
			out[u.Line] = u.Styles
		}
	}
	return out
}

// trimFinalNewline drops the empty line that follows a file's final newline, so
// rendering does not print an extra blank row.
func trimFinalNewline(lines highlight.Lines) highlight.Lines {
	if n := len(lines); n > 1 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}
