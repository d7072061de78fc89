package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the wattrace CLI's command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wattrace",
		Short: "WattTrace carbon-footprint static analyzer",
		Long: `WattTrace estimates the energy and carbon footprint of source code by
counting weighted operations per function and projecting them across the
user, developer, and server deployment tiers.

Commands:
  analyze   Estimate the footprint of a single source file
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewAnalyzeCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
