// Package cli implements the starkiller command line.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "starkiller",
	Short: "Relationship and content simulation for Starkiller Base Command",
	Long: "Simulates the commander's family and the recurring checkpoint captains\n" +
		"across a campaign, one in-game day at a time, and selects which authored\n" +
		"content is eligible to surface each day.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(newgameCmd)
}
