package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/cli"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/errors"
)

var (
	restoreOnly   []string
	restoreYes    bool
	restoreLatest bool
)

func init() {
	restoreCmd.Flags().StringSliceVar(&restoreOnly, "only", nil,
		"restore only these original file names (repeatable)")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "restore the most recent set")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [set-id]",
	Short: "Restore a backup set into the save folder",
	Long: `Copy the files of a backup set back into the profile's save folder under
their original names, overwriting the current saves.

Without a set id, choose one interactively: a fuzzy finder on a terminal,
a numbered list otherwise. A file that cannot be restored is reported and
skipped; the remaining files are still restored.`,
	Example: `  # Choose a set interactively
  savekeep restore

  # Restore a specific set without confirmation
  savekeep restore 250401_152655 --yes

  # Restore only one file from the newest set
  savekeep restore --latest --only save.sav

  See Also:
    savekeep backup list - List backup sets`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		var picker cli.SetPicker
		if id == "" && !restoreLatest {
			picker = cli.NewSetPicker(os.Stdin, os.Stdout)
		}
		return runRestoreWithIO(cmd.Context(), os.Stdin, os.Stdout, restoreArgs{
			ID:     id,
			Only:   restoreOnly,
			Yes:    restoreYes,
			Latest: restoreLatest,
			Picker: picker,
		})
	},
}

type restoreArgs struct {
	ID     string
	Only   []string
	Yes    bool
	Latest bool
	Picker cli.SetPicker
}

func runRestoreWithIO(ctx context.Context, r io.Reader, w io.Writer, args restoreArgs) error {
	env := app.Open(ctx)
	p, folder, err := env.Target()
	if err != nil {
		return err
	}
	if err := app.RequireSaveFolder(p); err != nil {
		return errors.NewUserError(err, "Run: savekeep profile set-folder <path>")
	}

	set, err := chooseSet(env, folder, args, w)
	if err != nil {
		return err
	}

	if !args.Yes {
		question := fmt.Sprintf("Overwrite saves in %s with set %s (%d files)?",
			p.SaveFolder, set.ID, len(set.Files))
		if !prompt.NewSelectorWithIO(r, w).Confirm(question) {
			fmt.Fprintln(w, "Cancelled")
			return nil
		}
	}

	report, err := env.Backups.Restore(ctx, backup.RestoreRequest{
		BackupFolder: folder,
		SaveFolder:   p.SaveFolder,
		SetID:        set.ID,
		Only:         args.Only,
	})
	if err != nil {
		return err
	}

	for _, fe := range report.Errors {
		fmt.Fprintf(w, "%s skipped %s\n", yellow("!"), fe)
	}
	if len(report.Restored) == 0 {
		if err := report.Err(); err != nil {
			return errors.Wrapf(err, "nothing restored from set %s", set.ID)
		}
		return errors.Newf("nothing restored from set %s: it lists no files", set.ID)
	}
	fmt.Fprintf(w, "%s restored %d file(s) from set %s into %s\n",
		green("✓"), len(report.Restored), set.ID, p.SaveFolder)
	return nil
}

// chooseSet resolves the set to restore from an explicit id, --latest, or
// the interactive picker.
func chooseSet(env *app.Env, folder string, args restoreArgs, w io.Writer) (backupset.BackupSet, error) {
	if args.ID != "" {
		set, err := env.Backups.Lookup(folder, args.ID)
		if errors.Is(err, backup.ErrSetNotFound) {
			return set, errors.NewUserError(err, "Run: savekeep backup list")
		}
		return set, err
	}

	sets, err := env.Backups.List(folder)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return backupset.BackupSet{}, errors.NewUserError(err, "Run: savekeep backup create <file>...")
		}
		return backupset.BackupSet{}, err
	}

	if args.Latest || args.Picker == nil {
		fmt.Fprintf(w, "Using most recent set: %s\n", sets[0].ID)
		return sets[0], nil
	}

	set, err := args.Picker.Pick(sets)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return backupset.BackupSet{}, errors.NewUserError(err, "")
		}
		return backupset.BackupSet{}, err
	}
	return *set, nil
}
