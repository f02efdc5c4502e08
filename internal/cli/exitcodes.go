package cli

import (
	"errors"

	"github.com/yaklabco/autosarlint/internal/configloader"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

// Exit codes for autosarlint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when error diagnostics remain.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrLintWarningsFound is returned in strict mode when warnings remain.
	ErrLintWarningsFound = errors.New("lint warnings found")

	// ErrFilesNotAnalysed is returned when some files could not be read,
	// decoded or written and no diagnostic decided the exit code.
	ErrFilesNotAnalysed = errors.New("some files could not be analysed")
)

// UsageError wraps a command-line parsing failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity[config.SeverityError]
	warnings := result.Stats.DiagnosticsBySeverity[config.SeverityWarning]

	switch {
	case errs > 0:
		return ExitLintErrors
	case strict && warnings > 0:
		return ExitLintWarnings
	case result.Stats.FilesErrored > 0 || len(result.Errors) > 0:
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// resultError converts an exit code from ExitCodeFromResult into the
// sentinel error the command returns.
func resultError(code int) error {
	switch code {
	case ExitLintErrors:
		return ErrLintIssuesFound
	case ExitLintWarnings:
		return ErrLintWarningsFound
	case ExitIOError:
		return ErrFilesNotAnalysed
	default:
		return nil
	}
}

// ExitCodeFromError maps an error returned by a command to a process exit code.
func ExitCodeFromError(err error) int {
	var (
		usageErr *UsageError
		verrs    configloader.ValidationErrors
		verr     *configloader.ValidationError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrLintWarningsFound):
		return ExitLintWarnings
	case errors.Is(err, ErrFilesNotAnalysed):
		return ExitIOError
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.As(err, &verrs), errors.As(err, &verr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsResultError reports whether err only signals the lint outcome and
// needs no log line.
func IsResultError(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) ||
		errors.Is(err, ErrLintWarningsFound) ||
		errors.Is(err, ErrFilesNotAnalysed)
}
