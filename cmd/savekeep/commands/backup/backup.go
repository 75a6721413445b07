// Package backup provides CLI commands for creating and managing backup sets.
package backup

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Status line colors. fatih/color disables them when stdout is not a terminal.
var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and manage backup sets",
	Long: `Create and manage backup sets for the active profile.

A backup set is one backup operation: the chosen save files copied into the
profile's backup folder, each renamed with the same timestamp, e.g.
save.sav -> save_250401_152655.sav. Sets are recorded in backup_sets.json
in the backup folder.

Use --profile to act on a profile other than the active one.`,
	Example: `  # Back up two save files
  savekeep backup create save.sav options.ini -m "before boss"

  # List sets, newest first
  savekeep backup list

  # Show the files in a set
  savekeep backup show 250401_152655

  # Keep the 5 most recent sets
  savekeep backup prune --keep 5

  See Also:
    savekeep restore - Restore a backup set`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
