package cli

import (
	"errors"

	"github.com/yaklabco/pyhl/internal/configloader"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/runner"
	"github.com/yaklabco/pyhl/pkg/theme"
)

// Exit codes for pyhl.
const (
	// ExitSuccess indicates successful execution with no errors reported.
	ExitSuccess = 0

	// ExitIssues indicates a check completed but reported errors or unreadable files.
	ExitIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a check. Warnings alone succeed.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitIssues
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, errUsage), errors.Is(err, theme.ErrUnknownTheme):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
