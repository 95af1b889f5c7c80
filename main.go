package main

import (
	"context"
	"io"
	"os"

	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	exitFn(run(context.Background(), afero.NewOsFs(), os.Stderr))
}

// run builds the CLI and returns the process exit code. Logs go to stderr
// at the level DEBUG selects.
func run(ctx context.Context, fs afero.Fs, stderr io.Writer) int {
	env, err := newEnvironmentFn(nil)
	if err != nil {
		logging.New(stderr, false).Error("failed to set up environment", "error", err)
		return errors.ExitCodeOf(err)
	}

	logger := logging.New(stderr, env.IsDebug())
	return execute(newRootCommandFn(ctx, fs, env, logger), logger)
}

// execute runs rootCmd and maps its error to an exit code. A failing test
// run has already been reported by the runner, so only its code is kept.
func execute(rootCmd *cobra.Command, logger *logging.Logger) int {
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitOK
	}
	if !errors.HasErrorCode(err, errors.ErrTestRunnerFailure) {
		logger.Error("fis-launcher failed", "error", err)
	}
	return errors.ExitCodeOf(err)
}
