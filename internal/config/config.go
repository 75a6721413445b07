package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/paths"
)

// SettingsName is the settings file name without extension.
const SettingsName = "settings"

// EnvPrefix prefixes every environment override, e.g. SAVEKEEP_BASE_DIR.
const EnvPrefix = "SAVEKEEP"

// Setting keys.
const (
	KeyBaseDir      = "base_dir"
	KeyPollInterval = "poll_interval"
	KeyLogLevel     = "log_level"
	KeyPruneKeep    = "prune_keep"
)

// Defaults.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPruneKeep    = 10
)

// Settings are the application-level settings. They are distinct from the
// profile document (config.json), which is managed by package profile.
type Settings struct {
	// BaseDir holds config.json and backups/. Empty means the
	// executable's directory.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir" toml:"base_dir" json:"base_dir"`

	// PollInterval is how often watch re-lists the save folder.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" toml:"poll_interval" json:"poll_interval"`

	// LogLevel overrides the verbosity flags when set.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" toml:"log_level" json:"log_level"`

	// PruneKeep is the default --keep for backup prune.
	PruneKeep int `mapstructure:"prune_keep" yaml:"prune_keep" toml:"prune_keep" json:"prune_keep"`
}

// ResolvedBaseDir returns BaseDir, or the default base directory when unset.
func (s *Settings) ResolvedBaseDir() string {
	if s.BaseDir != "" {
		return s.BaseDir
	}
	return paths.DefaultBaseDir()
}

// Init resets Viper and registers search paths, environment binding and
// defaults. Call this once at application startup before accessing
// settings.
func Init() {
	viper.Reset()

	viper.SetConfigName(SettingsName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.SettingsDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault(KeyBaseDir, "")
	viper.SetDefault(KeyPollInterval, DefaultPollInterval)
	viper.SetDefault(KeyLogLevel, "")
	viper.SetDefault(KeyPruneKeep, DefaultPruneKeep)
}

// Load reads the settings file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default locations and uses defaults
// when no file is found. The result is validated.
func Load(path string) (*Settings, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file: defaults apply.
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "settings file not found at %s", path)
		default:
			return nil, errors.ParseError(err, "reading settings file")
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.ParseError(err, "unmarshaling settings")
	}

	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating settings")
	}

	if s.BaseDir != "" {
		expanded, err := paths.ExpandHome(s.BaseDir)
		if err != nil {
			return nil, err
		}
		abs, err := paths.Abs(expanded)
		if err != nil {
			return nil, err
		}
		s.BaseDir = abs
	}
	return &s, nil
}

// FileUsed returns the settings file Viper read, or "" if none.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
