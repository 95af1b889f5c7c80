package version

// Application version information, overridden at build time with
// -ldflags "-X github.com/fis-platform/fis-launcher/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

// Test collaborator defaults
const (
	// DefaultTestModule is the test module expected next to the launcher.
	DefaultTestModule = "tests.py"

	// DefaultRunner is the preferred test runner executable.
	DefaultRunner = "pytest"

	// DefaultTracebackStyle is the traceback format passed to the runner.
	DefaultTracebackStyle = "short"

	// EnvFileName is the optional dotenv file read from the launcher directory.
	EnvFileName = ".env"
)

// String renders the version for the CLI.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
