// Package runner describes how the Python test runner is located and invoked.
package runner

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/fis-platform/fis-launcher/pkg/version"
)

// Options control the runner's reporting. Every launcher invocation uses
// DefaultOptions.
type Options struct {
	Verbose        bool
	TracebackStyle string
}

// DefaultOptions returns per-test reporting with short tracebacks.
func DefaultOptions() Options {
	return Options{
		Verbose:        true,
		TracebackStyle: version.DefaultTracebackStyle,
	}
}

// Args renders the runner arguments for module.
func (o Options) Args(module string) []string {
	args := []string{module}
	if o.Verbose {
		args = append(args, "-v")
	}
	if o.TracebackStyle != "" {
		args = append(args, "--tb="+o.TracebackStyle)
	}
	return args
}

// Runner is a resolved test runner executable plus any arguments that must
// precede the test module (for example "-m pytest").
type Runner struct {
	Name    string
	Command string
	Prefix  []string
}

// Invocation returns the command and full argument list for running module.
func (r Runner) Invocation(module string, opts Options) (string, []string) {
	args := make([]string, 0, len(r.Prefix)+3)
	args = append(args, r.Prefix...)
	args = append(args, opts.Args(module)...)
	return r.Command, args
}

// String renders the runner as it would be typed in a shell.
func (r Runner) String() string {
	if len(r.Prefix) == 0 {
		return r.Command
	}
	return r.Command + " " + strings.Join(r.Prefix, " ")
}

// VersionArgs returns the arguments that make the runner print its version.
// For a "-m pytest" runner this also proves the pytest module is importable.
func (r Runner) VersionArgs() []string {
	args := make([]string, 0, len(r.Prefix)+1)
	args = append(args, r.Prefix...)
	return append(args, "--version")
}

// LookPathFunc resolves an executable name to a path, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// ProbeFunc reports whether an interpreter candidate can run pytest. It is
// only consulted for candidates that need a prefix; a nil ProbeFunc accepts
// every candidate.
type ProbeFunc func(r *Runner) bool

// usable runs probe on r when r goes through an interpreter.
func usable(r *Runner, probe ProbeFunc, logger *logging.Logger) bool {
	if probe == nil || len(r.Prefix) == 0 {
		return true
	}
	if probe(r) {
		return true
	}
	logger.Debug(messages.MsgRunnerUnusable, "runner", r.String())
	return false
}

// notFound builds the TestRunnerNotFound error, naming interpreters that were
// present but could not import pytest.
func notFound(rejected []string) *errors.LauncherError {
	err := errors.NewTestRunnerNotFoundError(CandidateNames())
	if len(rejected) > 0 {
		err = err.WithContext("without_pytest", rejected)
	}
	return err
}

// candidate is an executable name plus the prefix arguments it needs.
type candidate struct {
	name   string
	prefix []string
}

// Candidates are tried in order: the pytest script, then the pytest module
// through the Python interpreter.
var candidates = []candidate{
	{name: version.DefaultRunner},
	{name: "python3", prefix: []string{"-m", "pytest"}},
	{name: "python", prefix: []string{"-m", "pytest"}},
}

// CandidateNames lists the executables Discover looks for.
func CandidateNames() []string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}
	return names
}

// Discover finds the test runner. A non-empty override names the runner
// executable directly and disables the fallback list. Interpreter candidates
// are skipped when probe rejects them.
func Discover(lookPath LookPathFunc, probe ProbeFunc, override string, logger *logging.Logger) (*Runner, error) {
	return discover(lookPath, probe, override, nil, logger)
}

func discover(lookPath LookPathFunc, probe ProbeFunc, override string, rejected []string, logger *logging.Logger) (*Runner, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if override != "" {
		path, err := lookPath(override)
		if err != nil {
			return nil, errors.NewTestRunnerNotFoundError([]string{override}).WithCause(err)
		}
		logger.Debug(messages.MsgRunnerOverride, "runner", path)
		return &Runner{Name: filepath.Base(override), Command: path}, nil
	}

	for _, c := range candidates {
		logger.Debug(messages.MsgRunnerCandidate, "candidate", c.name)
		path, err := lookPath(c.name)
		if err != nil {
			continue
		}
		r := &Runner{Name: c.name, Command: path, Prefix: c.prefix}
		if !usable(r, probe, logger) {
			rejected = append(rejected, r.Command)
			continue
		}
		logger.Debug(messages.MsgRunnerSelected, "runner", r.String())
		return r, nil
	}

	logger.Debug(messages.MsgRunnerUnavailable, "candidates", CandidateNames())
	return nil, notFound(rejected)
}
