package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/configloader"
	"github.com/yaklabco/pyhl/internal/logging"
	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/complete"
	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/syntax"
	"github.com/yaklabco/pyhl/pkg/theme"
	"github.com/yaklabco/pyhl/pkg/vocab"
)

// session is the resolved configuration of one command invocation and the core
// objects built from it.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	logger  *log.Logger
	debug   bool

	themes *theme.Registry
	vocab  *vocab.Vocabulary
}

// newSession loads configuration for cmd. cli holds the values set by command flags;
// only non-zero fields override the config files.
func newSession(cmd *cobra.Command, globals *globalFlags, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cli == nil {
		cli = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		mode, err := config.ParseColorMode(globals.color)
		if err != nil {
			return nil, err
		}
		cli.Color = mode
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.config,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLIConfig:           cli,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loaded.LoadedFrom)
	}

	cfg := loaded.Config
	logger.Debug("configuration resolved",
		logging.FieldTheme, cfg.Theme,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStrict, cfg.Strict,
	)

	themes, err := configloader.ThemeRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build themes: %w", err)
	}

	return &session{
		ctx:     ctx,
		cfg:     cfg,
		workDir: workDir,
		logger:  logger,
		debug:   globals.debug,
		themes:  themes,
		vocab:   configloader.Vocabulary(cfg),
	}, nil
}

// theme returns the named theme, or the configured one when name is empty.
func (s *session) theme(name string) (*theme.Theme, error) {
	if name == "" {
		name = s.cfg.Theme
	}
	if name == "" {
		name = theme.DefaultName
	}
	return s.themes.Get(name)
}

func (s *session) completion() *complete.Engine {
	return complete.New(s.vocab, complete.Options{
		MinPrefix:  s.cfg.Completion.MinPrefix,
		MaxResults: s.cfg.Completion.MaxResults,
	})
}

// documentOptions wires the configured vocabulary, completion and auto-close setting
// into document options. A nil theme leaves documents unstyled.
func (s *session) documentOptions(t *theme.Theme) document.Options {
	opts := document.Options{
		Tokenizer:  syntax.NewTokenizer(s.vocab),
		Completion: s.completion(),
		AutoClose:  s.cfg.AutoCloseEnabled(),
	}
	if t != nil {
		opts.Theme = t
	}
	return opts
}

func (s *session) colorEnabled(w io.Writer) bool {
	return pretty.IsColorEnabled(s.cfg.Color, w)
}

func (s *session) styles(w io.Writer) *pretty.Styles {
	return pretty.NewStyles(s.colorEnabled(w))
}
