// Package main provides the entry point for the wattrace CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/watttrace/analyzer-core/cmd/wattrace/commands"
)

func main() {
	rootCmd := commands.NewRootCommand()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
