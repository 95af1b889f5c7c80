package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncherErrorFormatting(t *testing.T) {
	t.Parallel()

	err := NewLauncherError(ErrEnvironment, "bad env")
	assert.Equal(t, "[ENVIRONMENT_LOAD_FAILED]: bad env", err.Error())

	err = err.WithCause(stderrors.New("boom"))
	assert.Equal(t, "[ENVIRONMENT_LOAD_FAILED]: bad env: boom", err.Error())
}

func TestUnwrapAndAs(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("no such file or directory")
	err := NewPathResolutionError("/opt/fis/launcher", cause)
	wrapped := fmt.Errorf("run: %w", err)

	assert.ErrorIs(t, wrapped, cause)

	le, ok := IsLauncherError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrPathResolution, le.Code)
	assert.Equal(t, "/opt/fis/launcher", le.Context["path"])
	assert.True(t, HasErrorCode(wrapped, ErrPathResolution))
	assert.False(t, HasErrorCode(wrapped, ErrTestRunnerNotFound))
	assert.False(t, HasErrorCode(stderrors.New("plain"), ErrPathResolution))
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", stderrors.New("plain"), ExitGeneric},
		{"path", NewPathResolutionError("x", nil), ExitPathResolution},
		{"module", NewTestModuleNotFoundError("tests.py", "/opt/fis"), ExitNoInput},
		{"runner missing", NewTestRunnerNotFoundError([]string{"pytest"}), ExitUnavailable},
		{"runner failure", NewTestRunnerFailure("pytest", 1), 1},
		{"runner interrupted", fmt.Errorf("wrapped: %w", NewTestRunnerFailure("pytest", 2)), 2},
		{"zero code falls back", NewLauncherError(ErrCommandExecution, "x").WithExitCode(ExitOK), ExitGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestDistinctMessages(t *testing.T) {
	t.Parallel()

	pathErr := NewPathResolutionError("/x", nil)
	runnerErr := NewTestRunnerNotFoundError([]string{"pytest"})
	moduleErr := NewTestModuleNotFoundError("tests.py", "/x")

	assert.NotEqual(t, pathErr.Message, runnerErr.Message)
	assert.Contains(t, moduleErr.Error(), "test module not found")
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("exec: not started")
	err := WrapError(cause, ErrCommandExecution, "start failed")
	assert.Equal(t, ErrCommandExecution, err.Code)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, ExitGeneric, err.ExitCode)
}
