package profile

import (
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// Entry is the stored form of a profile.
type Entry struct {
	SaveFolder string `json:"save_folder"`
}

// Config is the on-disk shape of config.json.
type Config struct {
	// ActiveProfile is null when no profile is active.
	ActiveProfile *string `json:"active_profile"`

	Profiles map[string]Entry `json:"profiles"`
}

// Empty returns a configuration with no profiles.
func Empty() Config {
	return Config{Profiles: map[string]Entry{}}
}

// Active returns the active profile name, or "" when none is set.
func (c Config) Active() string {
	if c.ActiveProfile == nil {
		return ""
	}
	return *c.ActiveProfile
}

// Names returns the profile names in sorted order.
func (c Config) Names() []string {
	return slices.Sorted(maps.Keys(c.Profiles))
}

// clone returns a deep copy so callers never share the store's maps.
func (c Config) clone() Config {
	out := Config{Profiles: maps.Clone(c.Profiles)}
	if out.Profiles == nil {
		out.Profiles = map[string]Entry{}
	}
	if c.ActiveProfile != nil {
		name := *c.ActiveProfile
		out.ActiveProfile = &name
	}
	return out
}

// Load reads the configuration at path. It never fails: an absent file
// yields an empty configuration, and a malformed one (unparseable, not an
// object, or missing "profiles") yields an empty configuration plus a
// warning on the default logger.
func Load(path string) Config {
	return load(path, slog.Default())
}

func load(path string, logger *slog.Logger) Config {
	data, err := fileutil.ReadDocument(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("config unreadable, starting empty", "path", path, "error", err)
		}
		return Empty()
	}

	cfg, err := Decode(data)
	if err != nil {
		logger.Warn("config malformed, starting empty", "path", path, "error", err)
		return Empty()
	}
	return cfg
}

// Decode parses a config document. Any error it returns is marked
// [errors.ErrParse]; Load discards such documents and starts empty.
func Decode(data []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.ParseError(err, "config is not a JSON object")
	}
	if raw == nil {
		return Config{}, errors.Mark(errors.New("config is null"), errors.ErrParse)
	}
	profiles, ok := raw["profiles"]
	if !ok {
		return Config{}, errors.Mark(errors.New(`config has no "profiles" key`), errors.ErrParse)
	}

	cfg := Empty()
	if err := json.Unmarshal(profiles, &cfg.Profiles); err != nil {
		return Config{}, errors.ParseError(err, "decoding profiles")
	}
	if cfg.Profiles == nil {
		return Config{}, errors.Mark(errors.New(`"profiles" is null`), errors.ErrParse)
	}
	if active, ok := raw["active_profile"]; ok {
		if err := json.Unmarshal(active, &cfg.ActiveProfile); err != nil {
			return Config{}, errors.ParseError(err, "decoding active_profile")
		}
	}

	// A dangling or empty active name is treated as unset.
	if name := cfg.Active(); name == "" {
		cfg.ActiveProfile = nil
	} else if _, ok := cfg.Profiles[name]; !ok {
		cfg.ActiveProfile = nil
	}
	return cfg, nil
}
