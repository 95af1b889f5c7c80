// Package launchexec is the single place where the launcher starts child
// processes.
package launchexec

import (
	"context"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/fis-platform/fis-launcher/pkg/messages"
)

// Task describes one child process.
type Task struct {
	Command string
	Args    []string
	// Dir is the child's working directory; "" keeps the current one.
	Dir string
	// Env entries are added on top of the inherited environment.
	Env []string
	// Stream copies the child's stdout/stderr to ours while it runs. Streamed
	// output is not kept, so Exec returns empty stdout and stderr.
	Stream bool
}

// Exec runs task in the foreground and waits for it.
//
// A child that starts and exits non-zero is not an error: its exit code is
// returned with a nil error. err is only set when the process could not be
// run at all.
func Exec(ctx context.Context, task Task, logger *logging.Logger) (string, string, int, error) {
	logger.Debug(messages.MsgExecuting, "command", task.Command, "args", task.Args, "dir", task.Dir)

	et := execute.ExecTask{
		Command:            task.Command,
		Args:               task.Args,
		Cwd:                task.Dir,
		Env:                task.Env,
		StreamStdio:        task.Stream,
		DisableStdioBuffer: task.Stream,
	}

	result, err := et.Execute(ctx)
	if err != nil {
		logger.Error(messages.MsgCommandFailed, "command", task.Command, "error", err)
		return result.Stdout, result.Stderr, errors.ExitGeneric, errors.NewCommandExecutionError(task.Command, err)
	}

	if result.ExitCode != 0 {
		logger.Debug(messages.MsgCommandNonZero, "command", task.Command, "code", result.ExitCode)
		return result.Stdout, result.Stderr, result.ExitCode, nil
	}

	logger.Debug(messages.MsgCommandCompleted, "command", task.Command, "code", result.ExitCode)
	return result.Stdout, result.Stderr, result.ExitCode, nil
}
