package cmd

import (
	"fmt"

	"github.com/fis-platform/fis-launcher/pkg/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the 'version' command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the launcher version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "fis-launcher %s\n", version.String())
		},
	}
}
