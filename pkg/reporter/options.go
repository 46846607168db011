package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/pyhl/pkg/config"
)

const bufWriterSize = 64 << 10

// Options controls what a Reporter prints and where.
type Options struct {
	Writer io.Writer
	Format Format
	Color  config.ColorMode

	// WorkingDir makes reported paths relative when set.
	WorkingDir string

	// Text output.
	ShowContext bool // print the offending source line with a caret
	ShowSummary bool // print the summary after the diagnostics
	Verbose     bool // use the multi-line summary block
	GroupByFile bool // print a header per file and indent its diagnostics

	// Compact disables JSON indentation.
	Compact bool
}

// DefaultOptions returns the options used by `pyhl check` without flags.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       config.ColorAuto,
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
	}
}
