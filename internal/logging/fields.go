// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig = "config"
	FieldTheme  = "theme"
	FieldStrict = "strict"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Document fields.
	FieldLanguage = "language"
	FieldBlocks   = "blocks"
	FieldLines    = "lines"
	FieldVersion  = "version"
	FieldHandle   = "handle"
	FieldUpdated  = "updated_lines"
	FieldEvent    = "event"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldErrors           = "errors"
	FieldWarnings         = "warnings"

	// Build fields.
	FieldBuildVersion = "build_version"
	FieldCommit       = "commit"
	FieldBuilt        = "built"

	// Diagnostic fields.
	FieldKind     = "kind"
	FieldSeverity = "severity"
	FieldPosition = "position"
)
