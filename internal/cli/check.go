package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/logging"
	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/reporter"
	"github.com/yaklabco/pyhl/pkg/runner"
)

// ErrIssuesFound is returned when a check reports errors. It only selects the exit code.
var ErrIssuesFound = errors.New("issues found")

type checkFlags struct {
	format          string
	strict          bool
	jobs            int
	markdown        bool
	detectUnlabeled bool
	ignore          []string
	noContext       bool
	compact         bool
	verbose         bool
}

const checkLongDescription = `Check Python files for unbalanced brackets and unterminated strings.

By default checks .py, .pyw and .pyi files under the current directory,
extensionless scripts whose content is Python, and python code blocks
in Markdown files. Specify paths to check specific files or directories.

An unterminated triple-quoted string at the end of a file is a warning,
unless --strict is set. Every other problem is an error.

Examples:
  pyhl check                      # Check current directory
  pyhl check src/ scripts/run     # Check a directory and a script
  pyhl check --format json        # Output as JSON for CI
  pyhl check --markdown=false     # Skip Markdown files
  pyhl check --strict             # Treat open triple strings as errors`

func newCheckCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Python files for bracket and string problems",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, github")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "report unterminated triple strings as errors")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", true, "check python code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.detectUnlabeled, "detect-unlabeled", false,
		"also check unlabeled Markdown code blocks that look like Python")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a detailed summary")

	return cmd
}

// checkCLIConfig maps explicitly set flags onto a config layer.
func checkCLIConfig(cmd *cobra.Command, flags *checkFlags) (*config.Config, error) {
	cli := &config.Config{
		Jobs:   flags.jobs,
		Strict: flags.strict,
		Ignore: flags.ignore,
	}
	if cmd.Flags().Changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		cli.Format = format
	}
	if cmd.Flags().Changed("markdown") {
		cli.Markdown.Enabled = config.Bool(flags.markdown)
	}
	cli.Markdown.DetectUnlabeled = flags.detectUnlabeled
	return cli, nil
}

func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, flags *checkFlags) error {
	cli, err := checkCLIConfig(cmd, flags)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, globals, cli)
	if err != nil {
		return err
	}
	cfg := s.cfg

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      s.workDir,
		Extensions:      runner.DefaultExtensions(),
		Markdown:        cfg.MarkdownEnabled(),
		DetectUnlabeled: cfg.Markdown.DetectUnlabeled,
		DetectScripts:   true,
		ExcludeGlobs:    cfg.Ignore,
		Jobs:            cfg.Jobs,
		Strict:          cfg.Strict,
		Document:        s.documentOptions(nil),
	}

	s.logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(runOpts.Document).Run(s.ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	format := reporter.FormatText
	if cfg.Format != "" {
		format = reporter.Format(cfg.Format)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Verbose:     flags.verbose,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  s.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(s.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}
