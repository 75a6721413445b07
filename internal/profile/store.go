package profile

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// Profile is a named pairing of a save folder with its backup folder.
type Profile struct {
	Name string `json:"name" yaml:"name" toml:"name"`

	// SaveFolder is an absolute path, or "" until one is chosen.
	SaveFolder string `json:"save_folder" yaml:"save_folder" toml:"save_folder"`

	// BackupFolder is derived as <base>/backups/<name>.
	BackupFolder string `json:"backup_folder" yaml:"backup_folder" toml:"backup_folder"`
}

// ConfigStore owns the profile configuration for one base directory.
type ConfigStore struct {
	mu      sync.Mutex
	path    string
	baseDir string
	cfg     Config
	logger  *slog.Logger
}

// Option configures a ConfigStore.
type Option func(*ConfigStore)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *ConfigStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the configuration at path once and returns a store whose
// backup folders live under baseDir/backups.
func Open(path, baseDir string, opts ...Option) *ConfigStore {
	s := &ConfigStore{
		path:    path,
		baseDir: baseDir,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = load(path, s.logger)
	return s
}

// Path returns the path of config.json.
func (s *ConfigStore) Path() string {
	return s.path
}

// BaseDir returns the base directory.
func (s *ConfigStore) BaseDir() string {
	return s.baseDir
}

// Snapshot returns a copy of the current configuration.
func (s *ConfigStore) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.clone()
}

// Save rewrites config.json from the in-memory state.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *ConfigStore) saveLocked() error {
	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteJSON(s.path, s.cfg); err != nil {
		return errors.Wrap(err, "saving config")
	}
	s.logger.Debug("config saved", "path", s.path, "profiles", len(s.cfg.Profiles))
	return nil
}

// ValidateName reports whether name can be used as a profile name. The
// name becomes a directory under backups/, so it must be a single
// non-empty path component.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Mark(errors.New("profile name is empty"), errors.ErrInvalidName)
	case name == "." || name == "..":
		return errors.Mark(errors.Newf("profile name %q is reserved", name), errors.ErrInvalidName)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return errors.Mark(errors.Newf("profile name %q contains a path separator", name), errors.ErrInvalidName)
	}
	return nil
}

// CreateProfile adds a profile with no save folder and makes it active.
// Names are case-sensitive. Returns an error marked
// [errors.ErrDuplicateName] if the name exists and [errors.ErrInvalidName]
// if it is unusable. The new state is kept in memory even if persisting
// fails.
func (s *ConfigStore) CreateProfile(name string) (Profile, error) {
	if err := ValidateName(name); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cfg.Profiles[name]; ok {
		return Profile{}, errors.Mark(errors.Newf("profile %q already exists", name), errors.ErrDuplicateName)
	}
	s.cfg.Profiles[name] = Entry{}
	s.cfg.ActiveProfile = &name
	s.logger.Info("profile created", "profile", name)

	return s.profileLocked(name), s.saveLocked()
}

// DeleteProfile removes a profile and clears the active selection if it
// pointed at it. The backup folder and its files are left on disk.
func (s *ConfigStore) DeleteProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cfg.Profiles[name]; !ok {
		return notFound(name)
	}
	delete(s.cfg.Profiles, name)
	if s.cfg.Active() == name {
		s.cfg.ActiveProfile = nil
	}
	s.logger.Info("profile deleted", "profile", name)
	return s.saveLocked()
}

// SetActiveProfile selects the active profile. An empty name clears the
// selection.
func (s *ConfigStore) SetActiveProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		s.cfg.ActiveProfile = nil
		return s.saveLocked()
	}
	if _, ok := s.cfg.Profiles[name]; !ok {
		return notFound(name)
	}
	s.cfg.ActiveProfile = &name
	return s.saveLocked()
}

// SetSaveFolder stores the cleaned absolute form of folder for a profile.
// The folder does not have to exist yet.
func (s *ConfigStore) SetSaveFolder(name, folder string) error {
	expanded, err := paths.ExpandHome(folder)
	if err != nil {
		return err
	}
	abs, err := paths.Abs(expanded)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cfg.Profiles[name]; !ok {
		return notFound(name)
	}
	s.cfg.Profiles[name] = Entry{SaveFolder: abs}
	s.logger.Info("save folder set", "profile", name, "folder", abs)
	return s.saveLocked()
}

// BackupFolderFor returns <base>/backups/<name>, creating it if needed.
// It is idempotent. Returns an error marked [errors.ErrIO] if the folder
// cannot be created.
func (s *ConfigStore) BackupFolderFor(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	folder := paths.BackupFolder(s.baseDir, name)
	if err := paths.EnsureDir(folder, 0); err != nil {
		return "", errors.Wrapf(err, "backup folder for %q", name)
	}
	return folder, nil
}

// Active returns the active profile, if one is set.
func (s *ConfigStore) Active() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.cfg.Active()
	if name == "" {
		return Profile{}, false
	}
	if _, ok := s.cfg.Profiles[name]; !ok {
		return Profile{}, false
	}
	return s.profileLocked(name), true
}

// Get returns the named profile. Returns an error marked
// [errors.ErrProfileNotFound] if it does not exist.
func (s *ConfigStore) Get(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cfg.Profiles[name]; !ok {
		return Profile{}, notFound(name)
	}
	return s.profileLocked(name), nil
}

// Resolve returns the named profile, or the active one when name is empty.
// Returns an error marked [errors.ErrNoActiveProfile] when name is empty
// and nothing is active.
func (s *ConfigStore) Resolve(name string) (Profile, error) {
	if name != "" {
		return s.Get(name)
	}
	p, ok := s.Active()
	if !ok {
		return Profile{}, errors.Mark(errors.New("no active profile"), errors.ErrNoActiveProfile)
	}
	return p, nil
}

// Profiles returns every profile sorted by name.
func (s *ConfigStore) Profiles() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.cfg.Names()
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		out = append(out, s.profileLocked(name))
	}
	return out
}

func (s *ConfigStore) profileLocked(name string) Profile {
	return Profile{
		Name:         name,
		SaveFolder:   s.cfg.Profiles[name].SaveFolder,
		BackupFolder: paths.BackupFolder(s.baseDir, name),
	}
}

func notFound(name string) error {
	return errors.Mark(errors.Newf("profile %q not found", name), errors.ErrProfileNotFound)
}
