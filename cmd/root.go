package cmd

import (
	"context"

	"github.com/fis-platform/fis-launcher/pkg/environment"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the root command with all subcommands attached.
// Invoked without arguments it runs the test suite next to the executable.
func NewRootCommand(ctx context.Context, fs afero.Fs, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "fis-launcher",
		Short: "Run the Financial Intelligence System test suite.",
		Long: `fis-launcher changes into the directory that contains it and runs the
test module found there with pytest, reporting every test verbosely with
short tracebacks. It can be started from any directory; the exit code is
the test runner's own.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := NewLauncherFn(fs, env, logger).Run(ctx)
			return err
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(NewVerifyCommand(ctx, fs, env, logger))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
