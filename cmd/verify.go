package cmd

import (
	"context"

	"github.com/fis-platform/fis-launcher/pkg/environment"
	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the 'verify' command.
func NewVerifyCommand(ctx context.Context, fs afero.Fs, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "verify",
		Aliases: []string{"v"},
		Example: "$ fis-launcher verify",
		Short:   "Check the launcher setup without running the tests",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			report := NewVerifierFn(NewLauncherFn(fs, env, logger)).Run(ctx)
			report.Render(c.OutOrStdout())
			if !report.Passed() {
				return errors.NewLauncherError(errors.ErrVerificationFailed, "setup verification failed")
			}
			return nil
		},
	}
}
