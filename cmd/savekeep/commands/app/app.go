// Package app holds the state shared by the root command and the noun
// subpackages (profile, backup). It exists to avoid import cycles between
// them.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thoreinstein/savekeep/internal/backup"
	"github.com/thoreinstein/savekeep/internal/config"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/internal/profile"
)

var (
	mu          sync.Mutex
	profileFlag string
	settings    *config.Settings
)

// GetProfileFlag returns the current value of the --profile flag.
func GetProfileFlag() string {
	mu.Lock()
	defer mu.Unlock()
	return profileFlag
}

// SetProfileFlag sets the profile flag value.
func SetProfileFlag(name string) {
	mu.Lock()
	defer mu.Unlock()
	profileFlag = name
}

// Settings returns the loaded settings, or defaults if none were loaded.
func Settings() *config.Settings {
	mu.Lock()
	defer mu.Unlock()
	if settings == nil {
		return &config.Settings{
			PollInterval: config.DefaultPollInterval,
			PruneKeep:    config.DefaultPruneKeep,
		}
	}
	return settings
}

// SetSettings installs the settings used by subsequent [Open] calls.
func SetSettings(s *config.Settings) {
	mu.Lock()
	defer mu.Unlock()
	settings = s
}

// Env is the per-invocation view of savekeep's state.
type Env struct {
	Settings *config.Settings
	BaseDir  string
	Profiles *profile.ConfigStore
	Backups  *backup.Manager
	Logger   *slog.Logger
}

// Open loads config.json from the base directory and prepares a backup
// manager. The logger is taken from ctx.
func Open(ctx context.Context) *Env {
	s := Settings()
	logger := logging.FromContext(ctx)
	base := s.ResolvedBaseDir()
	return &Env{
		Settings: s,
		BaseDir:  base,
		Profiles: profile.Open(paths.ConfigFile(base), base, profile.WithLogger(logger)),
		Backups:  backup.NewManager(backup.WithLogger(logger)),
		Logger:   logger,
	}
}

// Profile returns the profile named by --profile, or the active profile.
func (e *Env) Profile() (profile.Profile, error) {
	return e.Profiles.Resolve(GetProfileFlag())
}

// Target resolves the profile a command acts on together with its backup
// folder, creating the folder if needed.
func (e *Env) Target() (profile.Profile, string, error) {
	p, err := e.Profile()
	if err != nil {
		return profile.Profile{}, "", err
	}
	folder, err := e.Profiles.BackupFolderFor(p.Name)
	if err != nil {
		return profile.Profile{}, "", err
	}
	return p, folder, nil
}

// RequireSaveFolder returns an error marked [errors.ErrNoSaveFolder] when
// the profile has no save folder.
func RequireSaveFolder(p profile.Profile) error {
	if p.SaveFolder == "" {
		return errors.Mark(errors.Newf("profile %q has no save folder", p.Name), errors.ErrNoSaveFolder)
	}
	return nil
}
