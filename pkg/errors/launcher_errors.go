package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents specific error types in the launcher
type ErrorCode string

const (
	// Location errors
	ErrPathResolution ErrorCode = "PATH_RESOLUTION_FAILED"

	// Test collaborator errors
	ErrTestModuleNotFound ErrorCode = "TEST_MODULE_NOT_FOUND"
	ErrTestRunnerNotFound ErrorCode = "TEST_RUNNER_NOT_FOUND"
	ErrTestRunnerFailure  ErrorCode = "TEST_RUNNER_FAILED"

	// Execution errors
	ErrCommandExecution ErrorCode = "COMMAND_EXECUTION_FAILED"

	// Configuration errors
	ErrEnvironment ErrorCode = "ENVIRONMENT_LOAD_FAILED"

	// Setup verification
	ErrVerificationFailed ErrorCode = "VERIFICATION_FAILED"
)

// Process exit codes used by the launcher itself. They follow sysexits.h so
// they never collide with the 1-5 range pytest reports on its own.
const (
	ExitOK             = 0
	ExitGeneric        = 1
	ExitNoInput        = 66
	ExitUnavailable    = 69
	ExitPathResolution = 71
)

// LauncherError represents a structured error raised by the launcher
type LauncherError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	ExitCode  int                    `json:"exit_code"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (le *LauncherError) Error() string {
	if le.Cause != nil {
		return fmt.Sprintf("[%s]: %s: %v", le.Code, le.Message, le.Cause)
	}
	return fmt.Sprintf("[%s]: %s", le.Code, le.Message)
}

// Unwrap returns the underlying cause error
func (le *LauncherError) Unwrap() error {
	return le.Cause
}

// NewLauncherError creates a new structured launcher error
func NewLauncherError(code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:      code,
		Message:   message,
		ExitCode:  ExitGeneric,
		Timestamp: time.Now(),
		Context:   make(map[string]interface{}),
	}
}

// WithExitCode sets the process exit code the error maps to
func (le *LauncherError) WithExitCode(code int) *LauncherError {
	le.ExitCode = code
	return le
}

// WithCause adds the underlying cause error
func (le *LauncherError) WithCause(err error) *LauncherError {
	le.Cause = err
	return le
}

// WithContext adds arbitrary context to the error
func (le *LauncherError) WithContext(key string, value interface{}) *LauncherError {
	le.Context[key] = value
	return le
}

// IsLauncherError reports whether err, or anything it wraps, is a LauncherError
func IsLauncherError(err error) (*LauncherError, bool) {
	var le *LauncherError
	if stderrors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// HasErrorCode checks if an error has a specific error code
func HasErrorCode(err error, code ErrorCode) bool {
	if le, ok := IsLauncherError(err); ok {
		return le.Code == code
	}
	return false
}

// WrapError wraps a regular error as a LauncherError
func WrapError(err error, code ErrorCode, message string) *LauncherError {
	return NewLauncherError(code, message).WithCause(err)
}

// ExitCodeOf maps an error returned by the launcher to a process exit code.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	if le, ok := IsLauncherError(err); ok && le.ExitCode != ExitOK {
		return le.ExitCode
	}
	return ExitGeneric
}

// Common error constructors

func NewPathResolutionError(path string, cause error) *LauncherError {
	return NewLauncherError(ErrPathResolution, "cannot resolve launcher directory").
		WithExitCode(ExitPathResolution).
		WithContext("path", path).
		WithCause(cause)
}

func NewTestModuleNotFoundError(module, dir string) *LauncherError {
	return NewLauncherError(ErrTestModuleNotFound, fmt.Sprintf("test module not found: %s", module)).
		WithExitCode(ExitNoInput).
		WithContext("module", module).
		WithContext("dir", dir)
}

func NewTestRunnerNotFoundError(candidates []string) *LauncherError {
	return NewLauncherError(ErrTestRunnerNotFound, "test runner not available in this environment").
		WithExitCode(ExitUnavailable).
		WithContext("candidates", candidates)
}

// NewTestRunnerFailure reports a completed run with failing or erroring tests.
// The runner's own exit code is carried verbatim.
func NewTestRunnerFailure(runner string, exitCode int) *LauncherError {
	return NewLauncherError(ErrTestRunnerFailure, fmt.Sprintf("test run failed with exit code %d", exitCode)).
		WithExitCode(exitCode).
		WithContext("runner", runner).
		WithContext("exit_code", exitCode)
}

func NewCommandExecutionError(command string, cause error) *LauncherError {
	return NewLauncherError(ErrCommandExecution, "command execution failed").
		WithContext("command", command).
		WithCause(cause)
}
