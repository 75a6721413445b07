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
	"github.com/thoreinstein/savekeep/internal/errors"
)

var createMessage string

func init() {
	createCmd.Flags().StringVarP(&createMessage, "message", "m", "",
		`description stored with the set (default "Backup (<date>)")`)
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <file>...",
	Short: "Back up save files",
	Long: `Copy the given save files into the profile's backup folder as one set.

Relative file names are resolved against the profile's save folder. A file
that cannot be copied is reported and the rest are still backed up; the set
records only the files that were copied. If no file could be copied, no set
is recorded and the command fails.`,
	Example: `  savekeep backup create save.sav
  savekeep backup create save.sav options.ini -m "before boss"
  savekeep backup create /abs/path/profile.dat

  See Also:
    savekeep backup list - List backup sets`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateWithWriter(cmd.Context(), os.Stdout, args, createMessage)
	},
}

func runCreateWithWriter(ctx context.Context, w io.Writer, files []string, description string) error {
	env := app.Open(ctx)
	p, folder, err := env.Target()
	if err != nil {
		return err
	}
	if p.SaveFolder == "" {
		for _, f := range files {
			if !filepath.IsAbs(f) {
				return app.RequireSaveFolder(p)
			}
		}
	}

	report, err := env.Backups.Backup(ctx, backup.BackupRequest{
		BackupFolder: folder,
		SaveFolder:   p.SaveFolder,
		Files:        files,
		Description:  description,
	})
	if err != nil {
		return err
	}

	for _, fe := range report.Errors {
		fmt.Fprintf(w, "%s %s\n", red("✗"), fe)
	}
	if report.CopiedCount() == 0 {
		return errors.Wrap(report.Err(), "no files were backed up")
	}

	for _, path := range report.Copied {
		fmt.Fprintf(w, "  %s\n", gray(filepath.Base(path)))
	}
	status := green("✓")
	if len(report.Errors) > 0 {
		status = yellow("!")
	}
	fmt.Fprintf(w, "%s %s: created set %s (%d of %d files)\n",
		status, p.Name, bold(report.SetID), report.CopiedCount(), len(files))
	return nil
}
