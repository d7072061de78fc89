package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watttrace/analyzer-core/internal/version"
)

// NewVersionCommand reports the build version of the wattrace binary.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wattrace %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
