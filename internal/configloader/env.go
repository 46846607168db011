package configloader

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/pyhl/pkg/config"
)

// envVarPrefix is the prefix for all pyhl environment variables.
const envVarPrefix = "PYHL_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"THEME", "Highlight theme name", func(cfg *config.Config, v string) error {
		cfg.Theme = v
		return nil
	}},
	{"FORMAT", "Output format: text, json or github", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"COLOR", "Color mode: auto, always or never", func(cfg *config.Config, v string) error {
		cfg.Color = config.ColorMode(v)
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		return parseInt(v, &cfg.Jobs)
	}},
	{"AUTO_CLOSE", "Auto-close brackets: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("expected true/false/1/0")
		}
		cfg.AutoClose = config.Bool(b)
		return nil
	}},
	{"STRICT", "Treat unterminated strings at end of file as errors: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("expected true/false/1/0")
		}
		cfg.Strict = b
		return nil
	}},
	{"COMPLETION_MIN_PREFIX", "Shortest prefix that produces suggestions", func(cfg *config.Config, v string) error {
		return parseInt(v, &cfg.Completion.MinPrefix)
	}},
	{"COMPLETION_MAX_RESULTS", "Maximum suggestions (0 = unlimited)", func(cfg *config.Config, v string) error {
		return parseInt(v, &cfg.Completion.MaxResults)
	}},
	{"EXTRA_KEYWORDS", "Comma-separated keywords added to the vocabulary", func(cfg *config.Config, v string) error {
		cfg.Vocabulary.ExtraKeywords = parseSliceValue(v)
		return nil
	}},
	{"EXTRA_BUILTINS", "Comma-separated builtins added to the vocabulary", func(cfg *config.Config, v string) error {
		cfg.Vocabulary.ExtraBuiltins = parseSliceValue(v)
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
}

// LoadFromEnv applies PYHL_* overrides read through getenv. A nil getenv uses os.Getenv.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	var errs []error
	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s: %q: %w", name, value, err))
		}
	}
	return errors.Join(errs...)
}

func parseInt(v string, dst *int) error {
	i, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("expected an integer")
	}
	*dst = i
	return nil
}

// parseSliceValue splits a comma-separated list, trimming and dropping empty elements.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ListEnvVars returns the supported environment variables and their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[envVarPrefix+ev.suffix] = ev.description
	}
	return out
}

// EnvVarNames returns the supported variable names in documentation order.
func EnvVarNames() []string {
	names := make([]string, len(envVars))
	for i, ev := range envVars {
		names[i] = envVarPrefix + ev.suffix
	}
	return slices.Clip(names)
}
