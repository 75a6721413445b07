package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/naming"
	"github.com/thoreinstein/savekeep/internal/profile"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// ConfigFileCheck verifies that config.json is readable and well formed.
type ConfigFileCheck struct {
	Path string
}

var _ Check = (*ConfigFileCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigFileCheck) Name() string { return "config-file" }

// Category returns the grouping for this check.
func (c *ConfigFileCheck) Category() string { return "config" }

// Run reads and decodes the profile document.
func (c *ConfigFileCheck) Run() *CheckResult {
	data, err := fileutil.ReadDocument(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return result(c, SeverityInfo, "no config.json yet", "Run: savekeep profile create <name>")
	}
	if err != nil {
		return result(c, SeverityError, fmt.Sprintf("cannot read %s: %v", c.Path, err), "Check file permissions")
	}

	if _, err := profile.Decode(data); err != nil {
		return result(c, SeverityError, fmt.Sprintf("config.json is malformed: %v", err),
			"Fix or move "+c.Path+" aside; the next profile change replaces it with an empty config")
	}
	return pass(c, c.Path)
}

// ActiveProfileCheck reports whether a profile is selected.
type ActiveProfileCheck struct {
	Store *profile.ConfigStore
}

var _ Check = (*ActiveProfileCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ActiveProfileCheck) Name() string { return "active-profile" }

// Category returns the grouping for this check.
func (c *ActiveProfileCheck) Category() string { return "config" }

// Run inspects the store's active selection.
func (c *ActiveProfileCheck) Run() *CheckResult {
	if len(c.Store.Profiles()) == 0 {
		return result(c, SeverityInfo, "no profiles", "Run: savekeep profile create <name>")
	}
	active, ok := c.Store.Active()
	if !ok {
		return result(c, SeverityWarning, "no active profile", "Run: savekeep profile use <name>")
	}
	return pass(c, active.Name)
}

// SaveFolderCheck verifies a profile's save folder.
type SaveFolderCheck struct {
	Profile profile.Profile
}

var _ Check = (*SaveFolderCheck)(nil)

// Name returns the unique identifier for this check.
func (c *SaveFolderCheck) Name() string { return "save-folder:" + c.Profile.Name }

// Category returns the grouping for this check.
func (c *SaveFolderCheck) Category() string { return "profile" }

// Run checks that the folder is set and is a directory.
func (c *SaveFolderCheck) Run() *CheckResult {
	folder := c.Profile.SaveFolder
	if folder == "" {
		return result(c, SeverityWarning, "save folder not set",
			fmt.Sprintf("Run: savekeep profile set-folder --profile %q <path>", c.Profile.Name))
	}
	info, err := os.Stat(folder)
	switch {
	case os.IsNotExist(err):
		return result(c, SeverityWarning, folder+" does not exist", "Start the game once or fix the path")
	case err != nil:
		return result(c, SeverityError, fmt.Sprintf("cannot stat %s: %v", folder, err), "")
	case !info.IsDir():
		return result(c, SeverityError, folder+" is not a directory",
			fmt.Sprintf("Run: savekeep profile set-folder --profile %q <path>", c.Profile.Name))
	}
	return pass(c, folder)
}

// BackupFolderCheck verifies a backup folder against its set document.
// Sets with missing files are warnings; timestamped files that no set
// lists are reported as info.
type BackupFolderCheck struct {
	Profile string
	Store   *backupset.Store
}

var _ Check = (*BackupFolderCheck)(nil)

// Name returns the unique identifier for this check.
func (c *BackupFolderCheck) Name() string { return "backups:" + c.Profile }

// Category returns the grouping for this check.
func (c *BackupFolderCheck) Category() string { return "backup" }

// Run compares the set document with the folder contents.
func (c *BackupFolderCheck) Run() *CheckResult {
	sets, err := c.Store.Sorted()
	if err != nil {
		return result(c, SeverityError, err.Error(),
			"Fix or move "+c.Store.DocumentPath()+" aside")
	}

	listed := make(map[string]bool)
	var incomplete []string
	for _, set := range sets {
		for _, name := range set.Files {
			listed[name] = true
		}
		if missing := missingFiles(c.Store.Folder(), set); len(missing) > 0 {
			incomplete = append(incomplete, set.ID)
		}
	}

	orphans, err := c.orphans(listed)
	if err != nil {
		return result(c, SeverityError, err.Error(), "Check folder permissions")
	}

	details := map[string]any{"sets": len(sets)}
	switch {
	case len(incomplete) > 0:
		details["incomplete"] = incomplete
		r := result(c, SeverityWarning, fmt.Sprintf("%d set(s) have missing files", len(incomplete)),
			"Delete them with: savekeep backup delete <set-id>")
		r.Details = details
		return r
	case len(orphans) > 0:
		details["untracked"] = orphans
		r := result(c, SeverityInfo, fmt.Sprintf("%d backup file(s) belong to no set", len(orphans)), "")
		r.Details = details
		return r
	}
	r := pass(c, fmt.Sprintf("%d set(s)", len(sets)))
	r.Details = details
	return r
}

// orphans lists timestamped files in the folder that no set records.
func (c *BackupFolderCheck) orphans(listed map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(c.Store.Folder())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.IOError(err, "reading backup folder")
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || name == backupset.DocumentName || listed[name] {
			continue
		}
		if _, err := naming.TokenOf(name); err == nil {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}

func missingFiles(folder string, set backupset.BackupSet) []string {
	var missing []string
	for _, name := range set.Files {
		if !fileutil.Exists(filepath.Join(folder, name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Standard returns the checks for a base directory: the config file, the
// active selection, and each profile's save and backup folders.
func Standard(configPath string, store *profile.ConfigStore) []Check {
	checks := []Check{
		&ConfigFileCheck{Path: configPath},
		&ActiveProfileCheck{Store: store},
	}
	for _, p := range store.Profiles() {
		checks = append(checks,
			&SaveFolderCheck{Profile: p},
			&BackupFolderCheck{Profile: p.Name, Store: backupset.New(p.BackupFolder)},
		)
	}
	return checks
}
