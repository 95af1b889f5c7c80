// Package messages centralizes log and CLI message literals so they can be
// reused across the code-base and kept consistent. Constants are grouped by
// functional area.
package messages

// Log and CLI message constants.
const (
	// Launcher
	MsgResolvingLauncherDir = "resolving launcher directory"
	MsgChangedWorkingDir    = "changed working directory"
	MsgStartingTestRun      = "starting test run"
	MsgTestRunPassed        = "all tests passed"
	MsgTestRunFailed        = "test run reported failures"
	MsgStateTransition      = "launcher state changed"

	// Runner discovery
	MsgRunnerCandidate   = "checking test runner candidate"
	MsgRunnerSelected    = "test runner selected"
	MsgRunnerOverride    = "using test runner from environment"
	MsgRunnerUnavailable = "no test runner found"
	MsgRunnerUnusable    = "interpreter cannot import pytest, skipping"

	// Exec
	MsgExecuting        = "executing"
	MsgCommandCompleted = "command completed"
	MsgCommandNonZero   = "command exited with non-zero code"
	MsgCommandFailed    = "command execution failed"

	// Environment
	MsgLoadedEnvFile  = "loaded .env file"
	MsgEnvFileInvalid = "failed to parse .env file"

	// Verify
	MsgVerifyTitle    = "FIS test launcher - setup verification"
	MsgVerifyComplete = "VERIFICATION COMPLETE"
	MsgVerifyReady    = "launcher is ready"
	MsgVerifyNotReady = "launcher is not ready"
)
