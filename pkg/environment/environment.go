package environment

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/fis-platform/fis-launcher/pkg/version"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Environment holds environment configurations loaded from the OS or defaults.
type Environment struct {
	Debug      string `env:"DEBUG,default=0"`
	TestModule string `env:"FIS_TEST_MODULE,default=tests.py"`
	TestRunner string `env:"FIS_TEST_RUNNER"`
}

// IsDebug reports whether DEBUG=1 was set. It selects the log level.
func (e *Environment) IsDebug() bool {
	return e.Debug == "1"
}

// NewEnvironment initializes and returns a new Environment based on provided or default settings.
func NewEnvironment(environ *Environment) (*Environment, error) {
	if environ != nil {
		// An explicit environment is used as-is apart from defaults and validation.
		out := *environ
		if out.TestModule == "" {
			out.TestModule = version.DefaultTestModule
		}
		if err := validateTestModule(out.TestModule); err != nil {
			return nil, err
		}
		return &out, nil
	}

	environment := &Environment{}
	if _, err := env.UnmarshalFromEnviron(environment); err != nil {
		return nil, errors.WrapError(err, errors.ErrEnvironment, "failed to load environment")
	}

	if environment.TestModule == "" {
		environment.TestModule = version.DefaultTestModule
	}
	if err := validateTestModule(environment.TestModule); err != nil {
		return nil, err
	}

	return environment, nil
}

// validateTestModule keeps the test module inside the launcher directory.
func validateTestModule(module string) error {
	clean := filepath.Clean(module)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errors.NewLauncherError(errors.ErrEnvironment,
			fmt.Sprintf("test module must be relative to the launcher directory: %s", module)).
			WithContext("module", module)
	}
	return nil
}

// ReadDotEnv parses the .env file in dir and returns its entries as sorted
// KEY=VALUE pairs. A missing file yields no entries and no error.
func ReadDotEnv(fs afero.Fs, dir string) ([]string, error) {
	envFile := filepath.Join(dir, version.EnvFileName)
	exists, err := afero.Exists(fs, envFile)
	if err != nil || !exists {
		return nil, err
	}

	f, err := fs.Open(envFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrEnvironment, messages.MsgEnvFileInvalid).
			WithContext("file", envFile)
	}

	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs, nil
}
