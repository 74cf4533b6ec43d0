// Package cli implements the Ahorify command-line interface using Cobra.
// Each subcommand maps to one user-facing capability (add, progress,
// recent, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ahorify",
	Short: "Ahorify — Track your money, keep your streak",
	Long: `Ahorify is a local-first personal finance tracker.
Record expenses and income from the terminal and build a daily habit:
every activity earns points, streaks, milestones, and levels.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cliVersion = "dev"

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	cliVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
