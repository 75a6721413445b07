package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// AppName names the savekeep directories under the XDG homes.
const AppName = "savekeep"

// File and directory names inside the base directory.
const (
	ConfigFileName = "config.json"
	BackupsDirName = "backups"
)

// DefaultDirPerm is the default permission for directories savekeep creates.
const DefaultDirPerm = 0o755

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// executable is swapped in tests.
var executable = os.Executable

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used. It is idempotent and marks
// failures with [errors.ErrIO].
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return errors.IOError(err, "creating "+path)
	}
	return nil
}

// DefaultBaseDir returns the directory holding config.json and backups/.
// It is the directory of the running executable so a portable install
// keeps its data beside the binary. When the executable cannot be
// resolved it falls back to <DataHome>/savekeep.
func DefaultBaseDir() string {
	exe, err := executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	return filepath.Join(DataHome(), AppName)
}

// ConfigFile returns <base>/config.json.
func ConfigFile(base string) string {
	return filepath.Join(base, ConfigFileName)
}

// BackupsRoot returns <base>/backups.
func BackupsRoot(base string) string {
	return filepath.Join(base, BackupsDirName)
}

// BackupFolder returns <base>/backups/<profile>. It does not create it.
func BackupFolder(base, profile string) string {
	return filepath.Join(BackupsRoot(base), profile)
}

// SettingsDir returns <ConfigHome>/savekeep, searched for settings.yaml.
func SettingsDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// Abs cleans path and makes it absolute relative to the working directory.
// An empty path stays empty.
func Abs(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}
	return abs, nil
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
