package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/theme"
)

type themesFlags struct {
	format    string
	noPreview bool
}

// themeInfo represents a theme in JSON output.
type themeInfo struct {
	Name       string `json:"name"`
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`
	Current    bool   `json:"current"`
}

func newThemesCommand(globals *globalFlags) *cobra.Command {
	flags := &themesFlags{}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes and the themes defined in configuration,
each with a short highlighted preview. The configured theme is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runThemes(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.noPreview, "no-preview", false, "list names only")

	return cmd
}

func runThemes(cmd *cobra.Command, globals *globalFlags, flags *themesFlags) error {
	format, err := parseListingFormat(flags.format)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, globals, nil)
	if err != nil {
		return err
	}

	current, err := s.theme("")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	themes := s.themes.Themes()

	if format == config.FormatJSON {
		infos := make([]themeInfo, 0, len(themes))
		for _, t := range themes {
			infos = append(infos, themeInfo{
				Name:       t.Name,
				Background: t.Background,
				Foreground: t.Foreground,
				Current:    t == current,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encode themes: %w", err)
		}
		return nil
	}

	styles := s.styles(out)
	color := s.colorEnabled(out)

	var sb strings.Builder
	for i, t := range themes {
		if i > 0 && !flags.noPreview {
			sb.WriteByte('\n')
		}
		sb.WriteString(styles.Heading.Render(t.Name))
		if t == current {
			sb.WriteString(styles.Current.Render(" (current)"))
		}
		sb.WriteByte('\n')

		if flags.noPreview {
			continue
		}
		renderer := theme.NewRenderer(out, t, theme.RenderOptions{Color: color, Background: color})
		for line := range strings.SplitSeq(strings.TrimSuffix(renderer.Preview(), "\n"), "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	if _, err := fmt.Fprint(out, sb.String()); err != nil {
		return fmt.Errorf("write themes: %w", err)
	}
	return nil
}
