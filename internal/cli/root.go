// Package cli provides the Cobra command structure for pyhl.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug    bool
	config   string
	color    string
	noConfig bool
}

// NewRootCommand creates the root pyhl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "pyhl",
		Short: "Python syntax highlighting, bracket matching and completion",
		Long: `pyhl tokenizes Python source line by line, keeps highlighting current
under edits, pairs brackets and suggests keywords and builtins.

The commands render files with a theme, check files and Markdown code
blocks for unbalanced brackets and unterminated strings, and expose the
tokenizer, bracket matcher and completion engine for scripting.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if globals.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.config, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user and project config files")

	rootCmd.AddCommand(newHighlightCommand(globals))
	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newTokensCommand(globals))
	rootCmd.AddCommand(newCompleteCommand(globals))
	rootCmd.AddCommand(newMatchCommand(globals))
	rootCmd.AddCommand(newThemesCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	markUsageErrors(rootCmd)
	NewHelpFormatter(globals.color, rootCmd.OutOrStdout()).ApplyToCommand(rootCmd)

	return rootCmd
}

// markUsageErrors wraps argument and flag parsing errors in errUsage so they map to
// ExitInvalidUsage.
func markUsageErrors(root *cobra.Command) {
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})
	for _, sub := range root.Commands() {
		validate := sub.Args
		if validate == nil {
			continue
		}
		sub.Args = func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}
			return nil
		}
	}
}
