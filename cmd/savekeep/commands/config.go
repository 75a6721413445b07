package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands/app"
	"github.com/thoreinstein/savekeep/internal/cli"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/editor"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

var configFormat string

func init() {
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml",
		"output format: yaml, toml, json")
	configCmd.AddCommand(configShowCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect savekeep settings",
	Long: `Inspect the settings savekeep runs with.

Settings come from settings.yaml (in the working directory or
~/.config/savekeep), SAVEKEEP_* environment variables, and flags.

Without a subcommand, shows the effective settings.`,
	Example: `  # Show settings as YAML
  savekeep config

  # Show settings as TOML
  savekeep config show --format toml

See Also: savekeep profile list`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long:  `Show the effective settings and the paths derived from them.`,
	Example: `  savekeep config show --format json

See Also: savekeep config`,
	RunE: runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in your editor",
	Long: `Open settings.yaml in $EDITOR (or $VISUAL, nano, vi).

The file edited is the one given with --settings, else the one savekeep
found, else ~/.config/savekeep/settings.yaml, which is created from the
current settings if it does not exist.`,
	Example: `  EDITOR="code --wait" savekeep config edit`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigEdit(cmd.Context(), os.Stdout, settingsPath(), editor.Terminal())
	},
}

// configOutput is the document printed by config show. Durations are
// rendered as strings so every format shows "2s" rather than nanoseconds.
type configOutput struct {
	Settings     settingsOutput `json:"settings" yaml:"settings" toml:"settings"`
	SettingsFile string         `json:"settings_file" yaml:"settings_file" toml:"settings_file"`
	BaseDir      string         `json:"resolved_base_dir" yaml:"resolved_base_dir" toml:"resolved_base_dir"`
	ConfigFile   string         `json:"config_file" yaml:"config_file" toml:"config_file"`
	BackupsRoot  string         `json:"backups_root" yaml:"backups_root" toml:"backups_root"`
}

type settingsOutput struct {
	BaseDir      string `json:"base_dir" yaml:"base_dir" toml:"base_dir"`
	PollInterval string `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	PruneKeep    int    `json:"prune_keep" yaml:"prune_keep" toml:"prune_keep"`
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	return runConfigShowWithWriter(os.Stdout, configFormat)
}

func runConfigShowWithWriter(w io.Writer, format string) error {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return err
	}

	s := app.Settings()
	base := s.ResolvedBaseDir()
	return cli.Encode(w, f, configOutput{
		Settings: settingsOutput{
			BaseDir:      s.BaseDir,
			PollInterval: s.PollInterval.String(),
			LogLevel:     s.LogLevel,
			PruneKeep:    s.PruneKeep,
		},
		SettingsFile: config.FileUsed(),
		BaseDir:      base,
		ConfigFile:   paths.ConfigFile(base),
		BackupsRoot:  paths.BackupsRoot(base),
	})
}

// settingsPath returns the settings file config edit should open.
func settingsPath() string {
	if settingsFile != "" {
		return settingsFile
	}
	if used := config.FileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.SettingsDir(), config.SettingsName+".yaml")
}

func runConfigEdit(ctx context.Context, w io.Writer, path string, session editor.Session) error {
	if !fileutil.Exists(path) {
		if err := writeSettingsTemplate(path); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created %s\n", path)
	}
	fmt.Fprintf(w, "Location: %s\n", path)
	return editor.Open(ctx, session, path)
}

// writeSettingsTemplate seeds path with the current settings.
func writeSettingsTemplate(path string) error {
	s := app.Settings()
	var buf bytes.Buffer
	err := cli.Encode(&buf, cli.FormatYAML, settingsOutput{
		BaseDir:      s.BaseDir,
		PollInterval: s.PollInterval.String(),
		LogLevel:     s.LogLevel,
		PruneKeep:    s.PruneKeep,
	})
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, buf.Bytes(), 0o644)
}
