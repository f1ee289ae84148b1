// Package output provides structured output and error handling for the confluence-md CLI.
package output

import "errors"

// Exit codes:
// 0 = every page exported successfully
// 1 = export failed for at least one page (total or partial failure)
// 2 = invalid configuration (missing URL/token, unwritable output directory)
const (
	ExitSuccess      = 0
	ExitExportFailed = 1
	ExitConfigError  = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates an error for configuration problems (exit code 2).
// Use for: missing URL or token, unwritable output directory.
func NewConfigError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: message,
	}
}

// NewExportError creates an error for failed or partial exports (exit code 1).
func NewExportError(message string) *ExitError {
	return &ExitError{
		Code:    ExitExportFailed,
		Message: message,
	}
}

// NewExportErrorWithCause creates an export error wrapping an underlying cause.
func NewExportErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitExportFailed,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitExportFailed for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Untyped errors are runtime failures, not config mistakes
	return ExitExportFailed
}
