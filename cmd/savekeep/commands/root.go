// Package commands implements the CLI commands for savekeep.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/savekeep/cmd"
	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/backup"
	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/profile"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// settingsFile holds the value of the --settings flag.
var settingsFile string

// profileName holds the value of the --profile flag.
var profileName string

// settingsLoadErr holds any error that occurred during settings loading.
var settingsLoadErr error

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "",
		"profile to act on (default: the active profile)")
	rootCmd.PersistentFlags().String("base-dir", "",
		"directory holding config.json and backups/ (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "",
		"settings file (default: settings.yaml in . or ~/.config/savekeep)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Info().Version
	rootCmd.SetVersionTemplate("savekeep version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(profile.Cmd)
	rootCmd.AddCommand(backup.Cmd)
}

func initSettings() {
	config.Init()
	// --base-dir overrides settings.yaml and SAVEKEEP_BASE_DIR.
	_ = viper.BindPFlag(config.KeyBaseDir, rootCmd.PersistentFlags().Lookup("base-dir"))

	var s *config.Settings
	s, settingsLoadErr = config.Load(settingsFile)
	if settingsLoadErr == nil {
		app.SetSettings(s)
	}
}

var rootCmd = &cobra.Command{
	Use:   "savekeep",
	Short: "Timestamped backups of game save files",
	Long: `savekeep keeps point-in-time backups of game save files.

Each game is a profile: a save folder plus a backup folder. A backup copies
the chosen save files into the backup folder with a timestamp in each name,
e.g. save.sav becomes save_250401_152655.sav, and records the copies as one
backup set. Restoring a set copies the files back under their original names.

Profiles live in config.json and backups in backups/<profile>/, both next to
the savekeep executable unless --base-dir says otherwise.`,
	Example: `  # Create a profile and point it at the game's save folder
  savekeep profile create "Elden Ring"
  savekeep profile set-folder ~/.steam/steam/userdata/123/saves

  # Back up two files
  savekeep backup create ER0000.sl2 options.ini -m "before the final boss"

  # Pick a set and restore it
  savekeep restore

  See Also: savekeep profile, savekeep backup, savekeep restore`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		app.SetProfileFlag(profileName)
		return checkSettings(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags and
// the log_level setting.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelError
	case verbosity > 0:
		level = logging.LevelFromVerbosity(verbosity)
	default:
		level = logging.LevelFromVerbosity(0)
		// The setting applies only when no flag was given.
		if l, ok := logging.ParseLevel(app.Settings().LogLevel); ok && app.Settings().LogLevel != "" {
			level = l
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkSettings reports a settings load failure for commands that need them.
func checkSettings(cmd *cobra.Command) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	// A broken settings file can still be opened for fixing.
	if cmd == configEditCmd {
		return nil
	}
	if settingsLoadErr != nil {
		return errors.NewUserError(settingsLoadErr, "Check settings.yaml and SAVEKEEP_* environment variables")
	}
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return errors.Wrap(rootCmd.ExecuteContext(ctx), "executing root command")
}
