package profile

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/cli"
	"github.com/thoreinstein/savekeep/internal/profile"
)

var (
	listJSON   bool
	showFormat string
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "output format: yaml, toml, json (default: text)")
	Cmd.AddCommand(listCmd, showCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Long:  `List all profiles sorted by name. The active profile is marked with *.`,
	Example: `  savekeep profile list
  savekeep profile list --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), os.Stdout, listJSON)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile",
	Long:  `Show a profile's folders. Without a name, shows the --profile or active profile.`,
	Example: `  savekeep profile show
  savekeep profile show "Elden Ring" --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return runShowWithWriter(cmd.Context(), os.Stdout, name, showFormat)
	},
}

// listOutput is the JSON output for profile list.
type listOutput struct {
	Active   string            `json:"active_profile"`
	Profiles []profile.Profile `json:"profiles"`
}

func runListWithWriter(ctx context.Context, w io.Writer, asJSON bool) error {
	env := app.Open(ctx)
	profiles := env.Profiles.Profiles()
	active, _ := env.Profiles.Active()

	if asJSON {
		return cli.Encode(w, cli.FormatJSON, listOutput{Active: active.Name, Profiles: profiles})
	}

	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: savekeep profile create <name>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSAVE FOLDER")
	for _, p := range profiles {
		marker := " "
		name := p.Name
		if p.Name == active.Name {
			marker = "*"
			name = cyan(p.Name)
		}
		folder := p.SaveFolder
		if folder == "" {
			folder = gray("(not set)")
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, name, folder)
	}
	return tw.Flush()
}

func runShowWithWriter(ctx context.Context, w io.Writer, name, format string) error {
	env := app.Open(ctx)
	if name == "" {
		name = app.GetProfileFlag()
	}
	p, err := env.Profiles.Resolve(name)
	if err != nil {
		return err
	}

	if format != "" {
		f, err := cli.ParseFormat(format)
		if err != nil {
			return err
		}
		return cli.Encode(w, f, p)
	}

	sets, err := env.Backups.Store(p.BackupFolder).List()
	if err != nil {
		return err
	}
	active, _ := env.Profiles.Active()

	fmt.Fprintf(w, "%s\n", cyan(p.Name))
	if p.Name == active.Name {
		fmt.Fprintln(w, "  active:  yes")
	}
	folder := p.SaveFolder
	if folder == "" {
		folder = "(not set)"
	}
	fmt.Fprintf(w, "  saves:   %s\n", folder)
	fmt.Fprintf(w, "  backups: %s\n", p.BackupFolder)
	fmt.Fprintf(w, "  sets:    %d\n", len(sets))
	return nil
}
