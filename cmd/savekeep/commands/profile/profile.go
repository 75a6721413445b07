// Package profile provides CLI commands for managing savekeep profiles.
package profile

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Status line colors. fatih/color disables them when stdout is not a terminal.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root profile command.
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage game profiles",
	Long: `Manage game profiles.

A profile pairs a game's save folder with a backup folder at
<base>/backups/<name>. One profile is active at a time; commands act on it
unless --profile names another.

Profiles are stored in config.json in the base directory. Deleting a
profile never deletes its backups.`,
	Example: `  # Create a profile (it becomes active)
  savekeep profile create "Elden Ring"

  # Point the active profile at its save folder
  savekeep profile set-folder ~/saves/EldenRing

  # Switch profiles
  savekeep profile use "Hollow Knight"

  # List profiles
  savekeep profile list

  See Also:
    savekeep backup create - Back up the active profile
    savekeep restore       - Restore a backup set`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
