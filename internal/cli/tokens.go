package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

type tokensFlags struct {
	format         string
	skipWhitespace bool
}

// tokenLine is one line of the JSON token dump. Line is 1-based.
type tokenLine struct {
	Line   int         `json:"line"`
	State  string      `json:"state"`
	Tokens []tokenJSON `json:"tokens"`
}

type tokenJSON struct {
	Kind  syntax.Kind `json:"kind"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Text  string      `json:"text"`
}

func newTokensCommand(globals *globalFlags) *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Python file",
		Long: `Print every token of a Python file with its kind and byte range.
Use "-" to read from standard input. Lines that end inside a
triple-quoted string are marked with their carry-over state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.skipWhitespace, "skip-whitespace", false, "omit whitespace tokens")

	return cmd
}

func runTokens(cmd *cobra.Command, path string, globals *globalFlags, flags *tokensFlags) error {
	format, err := parseListingFormat(flags.format)
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

	dump := buildTokenDump(syntax.NewTokenizer(s.vocab), lines, flags.skipWhitespace)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		return nil
	}
	return writeTokenText(out, dump)
}

func buildTokenDump(tz *syntax.Tokenizer, lines highlight.Lines, skipWhitespace bool) []tokenLine {
	tokens, states := tz.TokenizeLines(lines)

	dump := make([]tokenLine, 0, len(lines))
	for i, line := range lines {
		tl := tokenLine{Line: i + 1, State: states[i].String(), Tokens: make([]tokenJSON, 0, len(tokens[i]))}
		for _, tok := range tokens[i] {
			if skipWhitespace && tok.Kind == syntax.KindWhitespace {
				continue
			}
			tl.Tokens = append(tl.Tokens, tokenJSON{
				Kind:  tok.Kind,
				Start: tok.Start,
				End:   tok.End,
				Text:  tok.Text(line),
			})
		}
		dump = append(dump, tl)
	}
	return dump
}

func writeTokenText(w io.Writer, dump []tokenLine) error {
	for _, tl := range dump {
		for _, tok := range tl.Tokens {
			if _, err := fmt.Fprintf(w, "%d:%d-%d\t%-10s %q\n", tl.Line, tok.Start, tok.End, tok.Kind, tok.Text); err != nil {
				return fmt.Errorf("write tokens: %w", err)
			}
		}
		if tl.State != syntax.StateNormal.String() {
			if _, err := fmt.Fprintf(w, "%d\t(%s)\n", tl.Line, tl.State); err != nil {
				return fmt.Errorf("write tokens: %w", err)
			}
		}
	}
	return nil
}
