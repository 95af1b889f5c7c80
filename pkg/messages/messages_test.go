package messages_test

import (
	"testing"

	. "github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/stretchr/testify/assert"
)

func TestMessageConstants(t *testing.T) {
	// Launcher
	assert.NotEmpty(t, MsgResolvingLauncherDir)
	assert.NotEmpty(t, MsgChangedWorkingDir)
	assert.NotEmpty(t, MsgStartingTestRun)
	assert.NotEmpty(t, MsgTestRunPassed)
	assert.NotEmpty(t, MsgTestRunFailed)
	assert.NotEmpty(t, MsgStateTransition)

	// Runner discovery
	assert.NotEmpty(t, MsgRunnerCandidate)
	assert.NotEmpty(t, MsgRunnerSelected)
	assert.NotEmpty(t, MsgRunnerOverride)
	assert.NotEmpty(t, MsgRunnerUnavailable)
	assert.NotEmpty(t, MsgRunnerUnusable)

	// Exec
	assert.NotEmpty(t, MsgExecuting)
	assert.NotEmpty(t, MsgCommandCompleted)
	assert.NotEmpty(t, MsgCommandNonZero)
	assert.NotEmpty(t, MsgCommandFailed)

	// Environment and verify
	assert.NotEmpty(t, MsgLoadedEnvFile)
	assert.NotEmpty(t, MsgEnvFileInvalid)
	assert.NotEmpty(t, MsgVerifyTitle)
	assert.NotEmpty(t, MsgVerifyComplete)
	assert.NotEmpty(t, MsgVerifyReady)
	assert.NotEmpty(t, MsgVerifyNotReady)
}
