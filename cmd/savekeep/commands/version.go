package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd"
	"github.com/thoreinstein/savekeep/internal/cli"
)

var versionFormat string

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "", "output format: yaml, toml, json (default: text)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date, and Go toolchain of savekeep.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return printVersion(c.OutOrStdout(), cmd.Info(), versionFormat)
	},
}

func printVersion(w io.Writer, info cmd.BuildInfo, format string) error {
	if format != "" {
		f, err := cli.ParseFormat(format)
		if err != nil {
			return err
		}
		return cli.Encode(w, f, info)
	}
	fmt.Fprintf(w, "savekeep version %s\n", info.Version)
	fmt.Fprintf(w, "  commit: %s\n", info.Commit)
	fmt.Fprintf(w, "  built:  %s\n", info.Date)
	if info.Go != "" {
		fmt.Fprintf(w, "  go:     %s\n", info.Go)
	}
	return nil
}
