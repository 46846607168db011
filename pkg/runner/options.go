// Package runner checks many files concurrently for syntax problems.
package runner

import (
	"github.com/yaklabco/pyhl/pkg/document"
)

// Language classifies a discovered file.
type Language string

// Languages handled by the runner.
const (
	LanguagePython   Language = "python"
	LanguageMarkdown Language = "markdown"
)

// Options controls multi-file checking behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Python. Defaults to DefaultExtensions().
	Extensions []string

	// Markdown includes Markdown files, whose Python code blocks are checked.
	Markdown bool

	// DetectUnlabeled also checks unlabeled Markdown fences that look like Python.
	DetectUnlabeled bool

	// DetectScripts checks extensionless files whose content is detected as Python.
	DetectScripts bool

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that is Python".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Strict reports unterminated triple-quoted strings as errors instead of warnings.
	Strict bool

	// Document configures the documents built for each file or code block.
	Document document.Options
}

// DefaultExtensions returns the default set of Python file extensions.
func DefaultExtensions() []string {
	return []string{".py", ".pyw", ".pyi"}
}

// MarkdownExtensions returns the Markdown file extensions checked when Markdown is set.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
