package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/pyhl/pkg/config"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/syntax"
	"github.com/yaklabco/pyhl/pkg/theme"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "themes.mine.tokens.keyword.fg").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: err.Error(),
		})
	}

	if _, err := config.ParseColorMode(string(cfg.Color)); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: err.Error(),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Completion.MinPrefix < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "completion.min_prefix",
			Value:   cfg.Completion.MinPrefix,
			Message: "min_prefix must be >= 0 (0 means the default)",
		})
	}
	if cfg.Completion.MaxResults < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "completion.max_results",
			Value:   cfg.Completion.MaxResults,
			Message: "max_results must be >= 0 (0 means unlimited)",
		})
	}

	validateThemes(cfg, result)
	validateVocabulary(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateThemes checks custom theme definitions and the selected theme name.
func validateThemes(cfg *config.Config, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Themes))
	for name := range cfg.Themes {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		def := cfg.Themes[name]
		field := "themes." + name

		surface := []struct{ key, value string }{
			{"background", def.Background},
			{"foreground", def.Foreground},
			{"gutter_background", def.GutterBackground},
			{"gutter_foreground", def.GutterForeground},
		}
		for _, s := range surface {
			if err := theme.ValidateColor(s.value); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + "." + s.key,
					Value:   s.value,
					Message: err.Error(),
				})
			}
		}

		kinds := make([]string, 0, len(def.Tokens))
		for kind := range def.Tokens {
			kinds = append(kinds, kind)
		}
		slices.Sort(kinds)
		for _, kind := range kinds {
			if _, err := syntax.ParseKind(kind); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".tokens." + kind,
					Value:   kind,
					Message: err.Error(),
				})
				continue
			}
			if err := theme.ValidateStyle(def.Tokens[kind]); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".tokens." + kind,
					Value:   def.Tokens[kind],
					Message: err.Error(),
				})
			}
		}
	}

	if !result.Valid() {
		return
	}

	reg, err := ThemeRegistry(cfg)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "themes",
			Message: err.Error(),
		})
		return
	}
	if cfg.Theme == "" {
		return
	}
	if _, err := reg.Get(cfg.Theme); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "theme",
			Value:   cfg.Theme,
			Message: err.Error(),
		})
	}
}

// validateVocabulary warns about words that can never be highlighted.
func validateVocabulary(cfg *config.Config, result *ValidationResult) {
	lists := []struct {
		field string
		words []string
	}{
		{"vocabulary.keywords", cfg.Vocabulary.Keywords},
		{"vocabulary.builtins", cfg.Vocabulary.Builtins},
		{"vocabulary.extra_keywords", cfg.Vocabulary.ExtraKeywords},
		{"vocabulary.extra_builtins", cfg.Vocabulary.ExtraBuiltins},
	}
	for _, l := range lists {
		for i, w := range l.words {
			if !isIdentifier(w) {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   fmt.Sprintf("%s[%d]", l.field, i),
					Value:   w,
					Message: fmt.Sprintf("%q is not an identifier; it will never match", w),
				})
			}
		}
	}
}

func isIdentifier(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !syntax.IsIdentRune(r) {
			return false
		}
	}
	return true
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := fsutil.CompilePattern(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: err.Error(),
			})
		}
	}
}
