// Package verify checks that the launcher can run the test suite without
// starting it: launcher directory, test module, runner and .env.
package verify

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fis-platform/fis-launcher/pkg/environment"
	"github.com/fis-platform/fis-launcher/pkg/launcher"
	"github.com/fis-platform/fis-launcher/pkg/launchexec"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/fis-platform/fis-launcher/pkg/runner"
	"github.com/fis-platform/fis-launcher/pkg/version"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Status of a single check.
type Status int

const (
	OK Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case OK:
		return "[OK]"
	case Warn:
		return "[!]"
	default:
		return "[X]"
	}
}

// Check is one line of the report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report is the ordered result of a verification.
type Report struct {
	Checks []Check
}

func (r *Report) add(name string, status Status, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Passed is false when any check failed. Warnings do not fail a report.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == Fail {
			return false
		}
	}
	return true
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ruleLine   = strings.Repeat("=", 70)
)

// Render writes the report in the same layout every time.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintln(w, titleStyle.Render("  "+messages.MsgVerifyTitle))
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintln(w)

	for i, c := range r.Checks {
		var style lipgloss.Style
		switch c.Status {
		case OK:
			style = okStyle
		case Warn:
			style = warnStyle
		default:
			style = failStyle
		}
		fmt.Fprintf(w, "%d. %s\n   %s %s\n", i+1, c.Name, style.Render(c.Status.String()), c.Detail)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintln(w, titleStyle.Render("  "+messages.MsgVerifyComplete))
	fmt.Fprintln(w, ruleLine)
	if r.Passed() {
		fmt.Fprintln(w, okStyle.Render(OK.String()+" "+messages.MsgVerifyReady))
	} else {
		fmt.Fprintln(w, failStyle.Render(Fail.String()+" "+messages.MsgVerifyNotReady))
	}
}

// Verifier runs the checks with the launcher's own resolution logic, so a
// passing report means Run would reach the runner.
type Verifier struct {
	Launcher *launcher.Launcher
}

// New returns a verifier for l.
func New(l *launcher.Launcher) *Verifier {
	return &Verifier{Launcher: l}
}

// Run performs every check. It never changes the working directory and
// never starts the test suite.
func (v *Verifier) Run(ctx context.Context) *Report {
	l := v.Launcher
	report := &Report{}

	dir, err := l.ResolveDir()
	if err != nil {
		report.add("Launcher directory", Fail, "%v", err)
		return report
	}
	report.add("Launcher directory", OK, "%s", dir)

	v.checkModule(report, dir)

	r, err := runner.DiscoverIn(l.Fs, dir, l.LookPath, l.Probe(ctx, dir, l.Logger), l.Env.TestRunner, l.Logger)
	if err != nil {
		report.add("Test runner", Fail, "no usable %s found in %s or on PATH (python needs the pytest module)", strings.Join(runner.CandidateNames(), ", "), strings.Join(runner.VenvDirs, "/"))
	} else {
		report.add("Test runner", OK, "%s", r.String())
		v.checkRunnerVersion(ctx, report, r, dir)
	}

	v.checkDotEnv(report, dir)
	return report
}

func (v *Verifier) checkModule(report *Report, dir string) {
	l := v.Launcher
	const name = "Test module"

	path, err := l.CheckModule(dir)
	if err != nil {
		report.add(name, Fail, "%s not found in %s", l.Env.TestModule, dir)
		return
	}

	info, err := l.Fs.Stat(path)
	if err != nil {
		report.add(name, Fail, "cannot read %s: %v", path, err)
		return
	}
	if info.Size() == 0 {
		report.add(name, Warn, "%s is empty", l.Env.TestModule)
		return
	}

	f, err := l.Fs.Open(path)
	if err != nil {
		report.add(name, Fail, "cannot read %s: %v", path, err)
		return
	}
	defer f.Close()

	// Only the file header is read.
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		report.add(name, Fail, "cannot read %s: %v", path, err)
		return
	}
	if !isText(mtype) {
		report.add(name, Fail, "%s is not a text file (%s)", l.Env.TestModule, mtype.String())
		return
	}
	report.add(name, OK, "%s (%s, %s)", l.Env.TestModule, humanize.Bytes(uint64(info.Size())), mtype.String())
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func (v *Verifier) checkRunnerVersion(ctx context.Context, report *Report, r *runner.Runner, dir string) {
	const name = "Test runner version"

	stdout, stderr, code, err := v.Launcher.Exec(ctx, launchexec.Task{
		Command: r.Command,
		Args:    r.VersionArgs(),
		Dir:     dir,
	}, v.Launcher.Logger)
	if err != nil {
		report.add(name, Fail, "%v", err)
		return
	}

	out := firstLine(stdout)
	if out == "" {
		// Older pytest releases print the version on stderr.
		out = firstLine(stderr)
	}
	if code != 0 {
		report.add(name, Fail, "exit code %d: %s", code, out)
		return
	}
	report.add(name, OK, "%s", out)
}

func (v *Verifier) checkDotEnv(report *Report, dir string) {
	l := v.Launcher
	const name = "Environment file"

	pairs, err := environment.ReadDotEnv(l.Fs, dir)
	if err != nil {
		report.add(name, Fail, "%v", err)
		return
	}
	exists, _ := afero.Exists(l.Fs, filepath.Join(dir, version.EnvFileName))
	if !exists {
		report.add(name, Warn, "no %s in %s; runner inherits the caller's environment only", version.EnvFileName, dir)
		return
	}
	report.add(name, OK, "%s with %d entries", version.EnvFileName, len(pairs))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
