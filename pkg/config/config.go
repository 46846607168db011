// Package config defines the configuration types for pyhl.
// These are plain data structures; loading and merging live in internal/configloader.
package config

import (
	"github.com/yaklabco/pyhl/pkg/highlight"
)

// ThemeConfig defines a custom theme.
type ThemeConfig struct {
	// Base names the theme whose colors are inherited. Empty means the default theme.
	Base string `yaml:"base,omitempty"`

	Background       string `yaml:"background,omitempty"`
	Foreground       string `yaml:"foreground,omitempty"`
	GutterBackground string `yaml:"gutter_background,omitempty"`
	GutterForeground string `yaml:"gutter_foreground,omitempty"`

	// Tokens maps token kind names (keyword, string, ...) to styles.
	Tokens map[string]highlight.Style `yaml:"tokens,omitempty"`
}

// VocabularyConfig adjusts the keyword and builtin sets.
type VocabularyConfig struct {
	// Keywords and Builtins replace the Python defaults when non-empty.
	Keywords []string `yaml:"keywords,omitempty"`
	Builtins []string `yaml:"builtins,omitempty"`

	// ExtraKeywords and ExtraBuiltins are added to the effective sets.
	ExtraKeywords []string `yaml:"extra_keywords,omitempty"`
	ExtraBuiltins []string `yaml:"extra_builtins,omitempty"`
}

// IsZero reports whether the vocabulary is left at the Python defaults.
func (v VocabularyConfig) IsZero() bool {
	return len(v.Keywords) == 0 && len(v.Builtins) == 0 &&
		len(v.ExtraKeywords) == 0 && len(v.ExtraBuiltins) == 0
}

// CompletionConfig tunes autocomplete.
type CompletionConfig struct {
	// MinPrefix is the shortest prefix that produces suggestions. 0 means the default.
	MinPrefix int `yaml:"min_prefix,omitempty"`

	// MaxResults truncates suggestion lists. 0 means unlimited.
	MaxResults int `yaml:"max_results,omitempty"`
}

// MarkdownConfig controls checking Python code blocks inside Markdown files.
type MarkdownConfig struct {
	// Enabled includes Markdown files in discovery. Nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`

	// DetectUnlabeled also checks unlabeled fences that look like Python.
	DetectUnlabeled bool `yaml:"detect_unlabeled,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

// Output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"

	// FormatGitHub writes GitHub Actions workflow commands. Only check supports it.
	FormatGitHub OutputFormat = "github"
)

// ColorMode controls ANSI color output.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the root configuration structure.
type Config struct {
	// Theme names the theme used for highlighting.
	Theme string `yaml:"theme,omitempty"`

	// Themes defines custom themes keyed by name.
	Themes map[string]ThemeConfig `yaml:"themes,omitempty"`

	Vocabulary VocabularyConfig `yaml:"vocabulary,omitempty"`
	Completion CompletionConfig `yaml:"completion,omitempty"`

	// AutoClose enables bracket auto-closing. Nil means enabled.
	AutoClose *bool `yaml:"auto_close,omitempty"`

	Markdown MarkdownConfig `yaml:"markdown,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Color controls ANSI colors.
	Color ColorMode `yaml:"-"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// Strict makes unterminated strings at end of file an error as well.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Theme:  "light",
		Format: FormatText,
		Color:  ColorAuto,
	}
}

// AutoCloseEnabled reports the effective auto_close setting.
func (c *Config) AutoCloseEnabled() bool {
	return c.AutoClose == nil || *c.AutoClose
}

// MarkdownEnabled reports the effective markdown.enabled setting.
func (c *Config) MarkdownEnabled() bool {
	return c.Markdown.Enabled == nil || *c.Markdown.Enabled
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
