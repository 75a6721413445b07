package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/naming"
)

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	Cmd.AddCommand(showCmd, deleteCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <set-id>",
	Short: "Show the files of a backup set",
	Long: `Show a backup set's description and files, with the name each file
restores to.`,
	Example: `  savekeep backup show 250401_152655`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowWithWriter(cmd.Context(), os.Stdout, args[0])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <set-id>",
	Short: "Delete a backup set and its files",
	Example: `  savekeep backup delete 250401_152655 --yes

  See Also:
    savekeep backup prune - Delete old sets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteWithIO(cmd.Context(), os.Stdin, os.Stdout, args[0], deleteYes)
	},
}

func runShowWithWriter(ctx context.Context, w io.Writer, id string) error {
	env := app.Open(ctx)
	_, folder, err := env.Target()
	if err != nil {
		return err
	}
	set, err := lookup(env, folder, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  %s\n", bold(set.ID), set.Date)
	fmt.Fprintf(w, "%s\n\n", set.Description)
	for _, name := range set.Files {
		original, err := naming.ToOriginalName(name)
		if err != nil {
			original = red("(unrecognized name)")
		}
		state := ""
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			state = yellow("  missing")
		}
		fmt.Fprintf(w, "  %s -> %s%s\n", name, original, state)
	}
	return nil
}

func runDeleteWithIO(ctx context.Context, r io.Reader, w io.Writer, id string, yes bool) error {
	env := app.Open(ctx)
	_, folder, err := env.Target()
	if err != nil {
		return err
	}
	set, err := lookup(env, folder, id)
	if err != nil {
		return err
	}

	if !yes && !confirm(r, w, fmt.Sprintf("Delete set %s and its %d files?", set.ID, len(set.Files))) {
		fmt.Fprintln(w, "Cancelled")
		return nil
	}

	if err := env.Backups.Delete(folder, id); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s deleted set %s\n", green("✓"), id)
	return nil
}

// lookup finds a set, pointing at backup list when the id is unknown.
func lookup(env *app.Env, folder, id string) (backupset.BackupSet, error) {
	set, err := env.Backups.Lookup(folder, id)
	if errors.Is(err, backup.ErrSetNotFound) {
		return set, errors.NewUserError(err, "Run: savekeep backup list")
	}
	return set, err
}

// resolve returns the full paths of a set's files.
func resolve(folder string, set backupset.BackupSet) []string {
	paths := make([]string, len(set.Files))
	for i, name := range set.Files {
		paths[i] = filepath.Join(folder, name)
	}
	return paths
}
