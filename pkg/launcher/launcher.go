// Package launcher runs the test module that sits next to the launcher
// executable, from whatever directory the launcher was invoked.
package launcher

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fis-platform/fis-launcher/pkg/environment"
	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/launchexec"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/fis-platform/fis-launcher/pkg/runner"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// State of a launcher. Transitions only move forward.
type State int

const (
	Initializing State = iota
	Running
	Finished
	Failed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExecFunc starts a child process, see launchexec.Exec.
type ExecFunc func(ctx context.Context, task launchexec.Task, logger *logging.Logger) (string, string, int, error)

// Result describes a completed test run.
type Result struct {
	RunID    string
	Dir      string
	Module   string
	Runner   string
	Args     []string
	ExitCode int
	Duration time.Duration
}

// Launcher resolves its own directory and delegates to the test runner.
// The function fields default to the real OS operations.
type Launcher struct {
	Fs     afero.Fs
	Env    *environment.Environment
	Logger *logging.Logger

	Executable   func() (string, error)
	EvalSymlinks func(string) (string, error)
	Chdir        func(string) error
	LookPath     runner.LookPathFunc
	Exec         ExecFunc

	state State
}

// New returns a launcher wired to the real filesystem and process table.
func New(fs afero.Fs, env *environment.Environment, logger *logging.Logger) *Launcher {
	return &Launcher{
		Fs:           fs,
		Env:          env,
		Logger:       logger,
		Executable:   os.Executable,
		EvalSymlinks: filepath.EvalSymlinks,
		Chdir:        os.Chdir,
		LookPath:     exec.LookPath,
		Exec:         launchexec.Exec,
		state:        Initializing,
	}
}

// State returns the launcher's current state.
func (l *Launcher) State() State {
	return l.state
}

func (l *Launcher) transition(to State, logger *logging.Logger) {
	if to <= l.state {
		return
	}
	logger.Debug(messages.MsgStateTransition, "from", l.state, "to", to)
	l.state = to
}

// ResolveDir returns the absolute directory holding the launcher executable,
// with symlinks resolved, and checks that it is an existing directory.
func (l *Launcher) ResolveDir() (string, error) {
	exe, err := l.Executable()
	if err != nil {
		return "", errors.NewPathResolutionError("", err)
	}

	resolved, err := l.EvalSymlinks(exe)
	if err != nil {
		return "", errors.NewPathResolutionError(exe, err)
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", errors.NewPathResolutionError(resolved, err)
	}
	dir := filepath.Dir(abs)

	info, err := l.Fs.Stat(dir)
	if err != nil {
		return "", errors.NewPathResolutionError(dir, err)
	}
	if !info.IsDir() {
		return "", errors.NewPathResolutionError(dir, os.ErrInvalid)
	}
	return dir, nil
}

// CheckModule verifies the test module exists as a regular file in dir.
func (l *Launcher) CheckModule(dir string) (string, error) {
	path := filepath.Join(dir, l.Env.TestModule)
	info, err := l.Fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", errors.NewTestModuleNotFoundError(l.Env.TestModule, dir)
	}
	return path, nil
}

// Probe returns a runner probe that asks an interpreter candidate for its
// pytest version in dir. Any start failure or non-zero exit rejects it.
func (l *Launcher) Probe(ctx context.Context, dir string, logger *logging.Logger) runner.ProbeFunc {
	return func(r *runner.Runner) bool {
		_, _, code, err := l.Exec(ctx, launchexec.Task{
			Command: r.Command,
			Args:    r.VersionArgs(),
			Dir:     dir,
		}, logger)
		return err == nil && code == 0
	}
}

// Run changes into the launcher directory and runs the test module once.
// A failing test run returns both the Result and a TestRunnerFailure error
// carrying the runner's exit code.
func (l *Launcher) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := l.Logger.With("run_id", runID)

	logger.Debug(messages.MsgResolvingLauncherDir)
	dir, err := l.ResolveDir()
	if err != nil {
		l.transition(Failed, logger)
		return nil, err
	}

	if err := l.Chdir(dir); err != nil {
		l.transition(Failed, logger)
		return nil, errors.NewPathResolutionError(dir, err)
	}
	logger.Debug(messages.MsgChangedWorkingDir, "dir", dir)

	if _, err := l.CheckModule(dir); err != nil {
		l.transition(Failed, logger)
		return nil, err
	}

	r, err := runner.DiscoverIn(l.Fs, dir, l.LookPath, l.Probe(ctx, dir, logger), l.Env.TestRunner, logger)
	if err != nil {
		l.transition(Failed, logger)
		return nil, err
	}

	extraEnv, err := environment.ReadDotEnv(l.Fs, dir)
	if err != nil {
		l.transition(Failed, logger)
		return nil, err
	}
	if len(extraEnv) > 0 {
		logger.Debug(messages.MsgLoadedEnvFile, "entries", len(extraEnv))
	}

	command, args := r.Invocation(l.Env.TestModule, runner.DefaultOptions())
	result := &Result{
		RunID:  runID,
		Dir:    dir,
		Module: l.Env.TestModule,
		Runner: r.String(),
		Args:   args,
	}

	l.transition(Running, logger)
	logger.Info(messages.MsgStartingTestRun, "runner", r.Name, "module", l.Env.TestModule, "dir", dir)

	start := time.Now()
	_, _, code, err := l.Exec(ctx, launchexec.Task{
		Command: command,
		Args:    args,
		Dir:     dir,
		Env:     extraEnv,
		Stream:  true,
	}, logger)
	result.Duration = time.Since(start)
	if err != nil {
		l.transition(Failed, logger)
		return nil, err
	}

	result.ExitCode = code
	l.transition(Finished, logger)

	if code != 0 {
		logger.Warn(messages.MsgTestRunFailed, "code", code, "duration", result.Duration.Round(time.Millisecond))
		return result, errors.NewTestRunnerFailure(r.Name, code)
	}

	logger.Info(messages.MsgTestRunPassed, "duration", result.Duration.Round(time.Millisecond))
	return result, nil
}
