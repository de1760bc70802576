// Package cli implements the wallboard CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wallboard",
	Short: "Call-center agent wallboard with tray status and desktop notifications",
	Long: `Wallboard shows call-center agents and their status (Available, Busy, Break).

Without a subcommand it starts the wallboard: a terminal view, a system tray
icon with quick status changes, and a local control API. Other subcommands talk
to the running instance, or work on a fresh roster when none is running.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWallboard,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addRunFlags(rootCmd)

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
