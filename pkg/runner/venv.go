package runner

import (
	"path/filepath"

	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/fis-platform/fis-launcher/pkg/version"
	"github.com/spf13/afero"
)

// VenvDirs are the virtual environment directories looked for next to the
// test module, in order.
var VenvDirs = []string{".venv", "venv"}

// A venv always ships "python"; "python3" is not guaranteed on windows.
var venvCandidates = []candidate{
	{name: version.DefaultRunner},
	{name: "python", prefix: []string{"-m", "pytest"}},
}

// venvExecutables returns the unix and windows locations of name inside a venv.
func venvExecutables(venvPath, name string) []string {
	return []string{
		filepath.Join(venvPath, "bin", name),
		filepath.Join(venvPath, "Scripts", name+".exe"),
	}
}

// DiscoverVenv looks for pytest, then python, inside a virtual environment
// in dir. It returns nil when there is none. The paths of venv interpreters
// rejected by probe are returned as well.
func DiscoverVenv(fs afero.Fs, dir string, probe ProbeFunc, logger *logging.Logger) (*Runner, []string) {
	var rejected []string
	for _, venv := range VenvDirs {
		venvPath := filepath.Join(dir, venv)
		if ok, _ := afero.DirExists(fs, venvPath); !ok {
			continue
		}

		for _, c := range venvCandidates {
			for _, path := range venvExecutables(venvPath, c.name) {
				logger.Debug(messages.MsgRunnerCandidate, "candidate", path)
				if isExecutableFile(fs, path) {
					r := &Runner{Name: c.name, Command: path, Prefix: c.prefix}
					if !usable(r, probe, logger) {
						rejected = append(rejected, path)
						continue
					}
					logger.Debug(messages.MsgRunnerSelected, "runner", r.String(), "venv", venv)
					return r, rejected
				}
			}
		}
	}
	return nil, rejected
}

func isExecutableFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if filepath.Ext(path) == ".exe" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// DiscoverIn resolves the runner for a launcher directory: an explicit
// override first, then a virtual environment in dir, then PATH. A venv
// without pytest does not shadow a runner on PATH.
func DiscoverIn(fs afero.Fs, dir string, lookPath LookPathFunc, probe ProbeFunc, override string, logger *logging.Logger) (*Runner, error) {
	var rejected []string
	if override == "" {
		var r *Runner
		if r, rejected = DiscoverVenv(fs, dir, probe, logger); r != nil {
			return r, nil
		}
	}
	return discover(lookPath, probe, override, rejected, logger)
}
