package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/watch"
)

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0,
		"refresh interval (default: poll_interval setting)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the save folder and refresh it as files change",
	Long: `List the files in the profile's save folder and print the listing again
whenever a file is added, removed, or modified. Runs until interrupted.

Changes are picked up from filesystem notifications where available and from
periodic polling otherwise.`,
	Example: `  savekeep watch
  savekeep watch --interval 500ms`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		interval := watchInterval
		if !cmd.Flags().Changed("interval") {
			interval = app.Settings().PollInterval
		}
		return runWatchWithWriter(cmd.Context(), os.Stdout, interval)
	},
}

func runWatchWithWriter(ctx context.Context, w io.Writer, interval time.Duration) error {
	env := app.Open(ctx)
	p, err := env.Profile()
	if err != nil {
		return err
	}
	if err := app.RequireSaveFolder(p); err != nil {
		return errors.NewUserError(err, "Run: savekeep profile set-folder <path>")
	}

	poller := watch.New(p.SaveFolder, watch.WithInterval(interval), watch.WithLogger(env.Logger))
	fmt.Fprintf(w, "Watching %s (%s)\n", p.SaveFolder, cyan(p.Name))
	return poller.Run(ctx, func(s watch.Snapshot) {
		printSnapshot(w, s)
	})
}

func printSnapshot(w io.Writer, s watch.Snapshot) {
	fmt.Fprintf(w, "\n%s %d file(s)\n", gray(s.Taken.Format(time.TimeOnly)), len(s.Files))
	for _, f := range s.Files {
		fmt.Fprintf(w, "  %-40s %10d  %s\n", f.Name, f.Size, f.ModTime.Format(time.DateTime))
	}
}
