package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/document"
)

type completeFlags struct {
	file       string
	at         string
	format     string
	minPrefix  int
	maxResults int
}

// completionOutput is the JSON form of a completion answer.
type completionOutput struct {
	Prefix      string   `json:"prefix"`
	Position    string   `json:"position,omitempty"`
	Suggestions []string `json:"suggestions"`
}

func newCompleteCommand(globals *globalFlags) *cobra.Command {
	flags := &completeFlags{}

	cmd := &cobra.Command{
		Use:   "complete [prefix]",
		Short: "Suggest keywords and builtins for a prefix",
		Long: `Suggest Python keywords and builtins starting with a prefix.
Keywords come first, then builtins, each in alphabetical order.

With --file and --at, the prefix is the identifier left of the
cursor at LINE:COL in the file (both 1-based).

Examples:
  pyhl complete pr                    # print, property
  pyhl complete --file app.py --at 3:8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "file to take the prefix from")
	cmd.Flags().StringVar(&flags.at, "at", "", "cursor position LINE:COL in --file")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.minPrefix, "min-prefix", 0, "shortest prefix that produces suggestions")
	cmd.Flags().IntVar(&flags.maxResults, "max-results", 0, "maximum number of suggestions (0 = unlimited)")

	return cmd
}

func runComplete(cmd *cobra.Command, args []string, globals *globalFlags, flags *completeFlags) error {
	format, err := parseListingFormat(flags.format)
	if err != nil {
		return err
	}

	fromFile := flags.file != "" || flags.at != ""
	switch {
	case fromFile && (flags.file == "" || flags.at == ""):
		return fmt.Errorf("%w: --file and --at must be used together", errUsage)
	case fromFile && len(args) > 0:
		return fmt.Errorf("%w: give either a prefix or --file and --at", errUsage)
	case !fromFile && len(args) == 0:
		return fmt.Errorf("%w: a prefix is required", errUsage)
	}

	s, err := newSession(cmd, globals, &config.Config{
		Completion: config.CompletionConfig{MinPrefix: flags.minPrefix, MaxResults: flags.maxResults},
	})
	if err != nil {
		return err
	}

	var answer completionOutput
	if fromFile {
		answer, err = completeInFile(cmd, s, flags.file, flags.at)
		if err != nil {
			return err
		}
	} else {
		answer = completionOutput{Prefix: args[0], Suggestions: s.completion().Suggest(args[0])}
	}
	if answer.Suggestions == nil {
		answer.Suggestions = []string{}
	}

	return writeCompletion(cmd.OutOrStdout(), format, answer)
}

func completeInFile(cmd *cobra.Command, s *session, path, at string) (completionOutput, error) {
	pos, err := parsePosition(at)
	if err != nil {
		return completionOutput{}, err
	}

	lines, err := readSource(s.ctx, cmd, path)
	if err != nil {
		return completionOutput{}, err
	}

	doc, _ := document.NewWorkspace(s.documentOptions(nil)).Open(path, lines)
	query, suggestions, err := doc.Suggest(pos)
	if err != nil {
		return completionOutput{}, fmt.Errorf("%w: %s in %s: %w", errUsage, at, path, err)
	}

	return completionOutput{
		Prefix:      query.Prefix,
		Position:    formatPosition(pos),
		Suggestions: suggestions,
	}, nil
}

func writeCompletion(w io.Writer, format config.OutputFormat, answer completionOutput) error {
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(answer); err != nil {
			return fmt.Errorf("encode suggestions: %w", err)
		}
		return nil
	}

	for _, s := range answer.Suggestions {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("write suggestions: %w", err)
		}
	}
	return nil
}
