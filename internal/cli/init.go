package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/configloader"
	"github.com/yaklabco/pyhl/internal/logging"
	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/theme"
)

// defaultConfigName is the file pyhl init writes when no --output is given.
const defaultConfigName = ".pyhl.yml"

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a pyhl configuration file",
		Long: `Create a .pyhl.yml configuration file in the current directory.

An existing file is only replaced with --force, or after confirmation
when running in a terminal. The previous file is kept as .pyhl.yml.pyhl.bak.

Examples:
  pyhl init                      Create a minimal .pyhl.yml
  pyhl init --full               Write every setting with its default
  pyhl init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting instead of commented examples")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	path, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Themes: theme.NewRegistry().Names(),
	})

	if _, err := os.Stat(path); err == nil {
		overwrite := flags.force
		if !overwrite && cmd.InOrStdin() == os.Stdin && configloader.IsInteractive() {
			overwrite, err = configloader.Confirm(os.Stdin, cmd.ErrOrStderr(),
				fmt.Sprintf("%s already exists. Overwrite?", flags.output), false)
			if err != nil {
				return err
			}
		}
		if !overwrite {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", errUsage, flags.output)
		}

		backup, err := fsutil.Backup(ctx, path)
		if err != nil {
			return err
		}
		if backup != "" {
			logger.Info("saved previous configuration", logging.FieldPath, backup)
		}
	}

	written, err := fsutil.WriteIfChanged(ctx, path, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	if !written {
		logger.Info("configuration already up to date", logging.FieldPath, flags.output)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'pyhl themes' to see the available themes")
	return nil
}
