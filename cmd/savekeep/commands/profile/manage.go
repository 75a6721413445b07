package profile

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
	deleteYes bool
	useNone   bool
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	useCmd.Flags().BoolVar(&useNone, "none", false, "clear the active profile")
	Cmd.AddCommand(createCmd, deleteCmd, useCmd, setFolderCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile",
	Long: `Create a profile with no save folder and make it active.

Names are case-sensitive and become a directory name under backups/, so
they cannot be empty, "." or "..", or contain path separators.`,
	Example: `  savekeep profile create "Elden Ring"

  See Also:
    savekeep profile set-folder - Choose the save folder`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateWithWriter(cmd.Context(), os.Stdout, args[0])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Long: `Delete a profile from config.json.

The profile's backup folder and every backup in it are left on disk. If the
profile was active, no profile is active afterwards.`,
	Example: `  savekeep profile delete "Elden Ring" --yes`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteWithIO(cmd.Context(), os.Stdin, os.Stdout, args[0], deleteYes)
	},
}

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile active",
	Example: `  savekeep profile use "Hollow Knight"

  # Clear the active profile
  savekeep profile use --none`,
	Args: func(cmd *cobra.Command, args []string) error {
		if useNone {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return runUseWithWriter(cmd.Context(), os.Stdout, name)
	},
}

var setFolderCmd = &cobra.Command{
	Use:   "set-folder <path>",
	Short: "Set the save folder of a profile",
	Long: `Set the folder the game writes its saves to.

Acts on the active profile unless --profile names another. Relative paths
and ~ are resolved; the folder does not need to exist yet.`,
	Example: `  savekeep profile set-folder ~/saves/EldenRing
  savekeep profile set-folder --profile "Hollow Knight" ./hk-saves`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetFolderWithWriter(cmd.Context(), os.Stdout, args[0])
	},
}

func runCreateWithWriter(ctx context.Context, w io.Writer, name string) error {
	env := app.Open(ctx)
	p, err := env.Profiles.CreateProfile(name)
	if errors.Is(err, errors.ErrIO) {
		return errors.NewSystemError(errors.Wrapf(err, "profile %s was not saved", name),
			"Check that "+env.BaseDir+" is writable")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s created profile %s (active)\n", green("✓"), p.Name)
	fmt.Fprintf(w, "  backups: %s\n", p.BackupFolder)
	fmt.Fprintf(w, "  next:    savekeep profile set-folder <path>\n")
	return nil
}

func runDeleteWithIO(ctx context.Context, r io.Reader, w io.Writer, name string, yes bool) error {
	env := app.Open(ctx)
	p, err := env.Profiles.Get(name)
	if err != nil {
		return err
	}

	if !yes {
		question := fmt.Sprintf("Delete profile %q? Backups in %s are kept.", name, p.BackupFolder)
		if !prompt.NewSelectorWithIO(r, w).Confirm(question) {
			fmt.Fprintln(w, "Cancelled")
			return nil
		}
	}

	if err := env.Profiles.DeleteProfile(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s deleted profile %s\n", green("✓"), name)
	fmt.Fprintf(w, "  %s\n", gray("backups kept in "+p.BackupFolder))
	return nil
}

func runUseWithWriter(ctx context.Context, w io.Writer, name string) error {
	env := app.Open(ctx)
	if err := env.Profiles.SetActiveProfile(name); err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintf(w, "%s no profile is active\n", green("✓"))
		return nil
	}
	fmt.Fprintf(w, "%s active profile: %s\n", green("✓"), name)
	return nil
}

func runSetFolderWithWriter(ctx context.Context, w io.Writer, folder string) error {
	env := app.Open(ctx)
	p, err := env.Profile()
	if err != nil {
		return err
	}
	if err := env.Profiles.SetSaveFolder(p.Name, folder); err != nil {
		return err
	}

	p, err = env.Profiles.Get(p.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s saves from %s\n", green("✓"), p.Name, p.SaveFolder)
	if info, err := os.Stat(p.SaveFolder); err != nil || !info.IsDir() {
		fmt.Fprintf(w, "  %s\n", yellow("folder does not exist yet"))
	}
	return nil
}
