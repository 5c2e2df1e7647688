// Package cmd implements the parlance CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🗣"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "parlance",
	Short: logo + " parlance — tool-calling agent for local models",
	Long:  logo + " parlance — a function-call extraction and dispatch layer for local chat models",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(cronCmd)
}
