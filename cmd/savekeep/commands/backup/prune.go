package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/errors"
)

var (
	pruneKeep int
	pruneYes  bool
)

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1,
		"number of sets to retain (default: prune_keep setting)")
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "skip the confirmation prompt")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backup sets",
	Long: `Remove backup sets beyond the retention count, oldest first, together
with their files.

Without --keep, the prune_keep setting is used (10 unless configured).
Pruning only happens when you run this command.`,
	Example: `  # Keep the default number of sets
  savekeep backup prune

  # Keep only the 3 most recent sets
  savekeep backup prune --keep 3 --yes

  See Also:
    savekeep backup list - List backup sets`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		keep := pruneKeep
		if !cmd.Flags().Changed("keep") {
			keep = app.Settings().PruneKeep
		}
		return runPruneWithIO(cmd.Context(), os.Stdin, os.Stdout, keep, pruneYes)
	},
}

func runPruneWithIO(ctx context.Context, r io.Reader, w io.Writer, keep int, yes bool) error {
	if keep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	env := app.Open(ctx)
	p, folder, err := env.Target()
	if err != nil {
		return err
	}

	sets, err := env.Backups.Store(folder).Sorted()
	if err != nil {
		return err
	}
	toRemove := len(sets) - keep
	if toRemove <= 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	if !yes && !confirm(r, w, fmt.Sprintf("Remove %d old set(s) of %s, keeping %d?", toRemove, p.Name, keep)) {
		fmt.Fprintln(w, "Cancelled")
		return nil
	}

	removed, err := env.Backups.Prune(folder, keep)
	for _, id := range removed {
		fmt.Fprintf(w, "  %s\n", gray("removed "+id))
	}
	if err != nil {
		return errors.Wrapf(err, "pruning backups for %s", p.Name)
	}
	fmt.Fprintf(w, "%s %s: removed %d old set(s)\n", green("✓"), p.Name, len(removed))
	return nil
}

func confirm(r io.Reader, w io.Writer, question string) bool {
	return prompt.NewSelectorWithIO(r, w).Confirm(question)
}
