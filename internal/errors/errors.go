package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates every requested platform passed.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (unknown platform, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (tool failure, I/O, permissions, etc.).
	ExitSystem = 2

	// ExitCompile indicates the run completed but at least one example failed to compile.
	ExitCompile = 3
)

// Wrapping helpers re-exported from cockroachdb/errors.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = crdb.Is
	As    = crdb.As
	Mark  = crdb.Mark
)

// Sentinel errors for common failure conditions.
var (
	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = New("name is required")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = New("invalid configuration")

	// ErrUnknownPlatform indicates a platform or group alias is not registered.
	ErrUnknownPlatform = New("unknown platform or group")

	// ErrMetadataNotFound indicates the library metadata file does not exist.
	ErrMetadataNotFound = New("library metadata not found")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Check boardci.yaml or run: boardci config",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err. A nil error maps to
// ExitSuccess; an error without an ExitError in its chain maps to ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
