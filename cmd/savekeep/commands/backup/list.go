package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/cli"
	"github.com/thoreinstein/savekeep/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup sets",
	Long: `List the backup sets of the profile, most recent first.

Sets whose files are no longer all present in the backup folder are marked
as incomplete.`,
	Example: `  # List sets of the active profile
  savekeep backup list

  # List sets of another profile
  savekeep backup list --profile "Hollow Knight"

  # Output as JSON
  savekeep backup list --json

  See Also:
    savekeep backup show - Show the files of a set
    savekeep restore     - Restore a set`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), os.Stdout, listJSON)
	},
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Profile string       `json:"profile"`
	Folder  string       `json:"folder"`
	Sets    []infoOutput `json:"sets"`
}

// infoOutput represents a single set in JSON output.
type infoOutput struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
	Missing     int      `json:"missing"`
}

func runListWithWriter(ctx context.Context, w io.Writer, asJSON bool) error {
	env := app.Open(ctx)
	p, folder, err := env.Target()
	if err != nil {
		return err
	}

	sets, err := env.Backups.List(folder)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrapf(err, "listing backups for %s", p.Name)
	}

	if asJSON {
		out := listOutput{Profile: p.Name, Folder: folder, Sets: make([]infoOutput, 0, len(sets))}
		for _, set := range sets {
			out.Sets = append(out.Sets, infoOutput{
				ID:          set.ID,
				Date:        set.Date,
				Description: set.Description,
				Files:       set.Files,
				Missing:     missing(folder, set),
			})
		}
		return cli.Encode(w, cli.FormatJSON, out)
	}

	if len(sets) == 0 {
		fmt.Fprintf(w, "%s has no backups\n", p.Name)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: savekeep backup create <file>...")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFILES\tDESCRIPTION")
	for _, set := range sets {
		files := fmt.Sprintf("%d", len(set.Files))
		if n := missing(folder, set); n > 0 {
			files += yellow(fmt.Sprintf(" (%d missing)", n))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", green(set.ID), set.Date, files, set.Description)
	}
	return tw.Flush()
}

// missing counts the set's files absent from folder.
func missing(folder string, set backupset.BackupSet) int {
	n := 0
	for _, path := range resolve(folder, set) {
		if _, err := os.Stat(path); err != nil {
			n++
		}
	}
	return n
}
