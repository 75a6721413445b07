package backup

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/naming"
	"github.com/thoreinstein/savekeep/internal/timestamp"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// Manager runs backup and restore operations one at a time.
type Manager struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for operation logs.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source for set tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a new Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the set store for a backup folder.
func (m *Manager) Store(folder string) *backupset.Store {
	return backupset.New(folder, backupset.WithLogger(m.logger))
}

// Backup copies each requested file into the backup folder under a name
// carrying one shared timestamp token, then records the copies as a set.
//
// A failing file does not stop the batch; its error is collected in the
// report, as is a file whose backup name an earlier file already took. The
// set is recorded only if at least one copy succeeded. A
// failure to record the set is returned as the operation error together
// with the report. When ctx is cancelled the remaining files are reported
// as failed with the context error.
func (m *Manager) Backup(ctx context.Context, req BackupRequest) (*BackupReport, error) {
	if req.BackupFolder == "" {
		return nil, errors.New("backup folder is required")
	}
	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	report := &BackupReport{OpID: uuid.NewString()}
	log := m.logger.With("op", report.OpID)
	token := timestamp.Render(m.now())
	log.Info("backup started", "folder", req.BackupFolder, "files", len(req.Files), "token", token)

	var names []string
	for i, file := range req.Files {
		if err := ctx.Err(); err != nil {
			for _, rest := range req.Files[i:] {
				report.Errors = append(report.Errors, &FileError{Path: rest, Err: err})
			}
			log.Warn("backup cancelled", "remaining", len(req.Files)-i)
			break
		}

		src := resolve(req.SaveFolder, file)
		name := naming.ToBackupName(filepath.Base(src), token)
		dst := filepath.Join(req.BackupFolder, name)

		// The first source claims a backup name; later ones with the same
		// base name would overwrite it.
		if slices.Contains(names, name) {
			err := errors.Mark(errors.Newf("%s collides with an earlier file as %s", src, name), errors.ErrDuplicateSource)
			log.Warn("backup skipped duplicate", "file", src, "backup", name)
			report.Errors = append(report.Errors, &FileError{Path: src, Err: err})
			continue
		}

		if err := fileutil.BackupCopy(src, dst); err != nil {
			log.Warn("backup copy failed", "file", src, "error", err)
			report.Errors = append(report.Errors, &FileError{Path: src, Err: err})
			continue
		}
		log.Debug("file backed up", "file", src, "backup", dst)
		report.Copied = append(report.Copied, dst)
		names = append(names, name)
	}

	if len(report.Copied) == 0 {
		log.Warn("backup recorded nothing", "errors", len(report.Errors))
		return report, nil
	}

	id, err := m.Store(req.BackupFolder).CreateSet(token, names, req.Description)
	if err != nil {
		return report, errors.Wrap(err, "recording backup set")
	}
	report.SetID = id
	log.Info("backup finished", "set", id, "copied", report.CopiedCount(), "errors", len(report.Errors))
	return report, nil
}

// Restore copies the files of a set back into the save folder under their
// original names, overwriting what is there.
//
// A backup file that is missing, has an unrecognized name, or fails to
// copy is skipped and explained in the report. An unknown set id restores
// nothing. When ctx is cancelled the remaining files are skipped with the
// context error.
func (m *Manager) Restore(ctx context.Context, req RestoreRequest) (*RestoreReport, error) {
	if req.BackupFolder == "" {
		return nil, errors.New("backup folder is required")
	}
	if req.SaveFolder == "" {
		return nil, errors.Mark(errors.New("save folder is not set"), errors.ErrNoSaveFolder)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	report := &RestoreReport{OpID: uuid.NewString(), SetID: req.SetID}
	log := m.logger.With("op", report.OpID)

	files, err := m.Store(req.BackupFolder).ResolveFiles(req.SetID)
	if err != nil {
		return report, errors.Wrapf(err, "resolving set %s", req.SetID)
	}
	log.Info("restore started", "set", req.SetID, "files", len(files), "to", req.SaveFolder)

	skip := func(path string, err error) {
		log.Warn("restore skipped", "file", path, "error", err)
		report.Skipped = append(report.Skipped, path)
		report.Errors = append(report.Errors, &FileError{Path: path, Err: err})
	}

	matched := make(map[string]bool, len(req.Only))
	for i, backupPath := range files {
		if err := ctx.Err(); err != nil {
			for _, rest := range files[i:] {
				skip(rest, err)
			}
			break
		}

		original, nameErr := naming.ToOriginalName(filepath.Base(backupPath))
		if nameErr == nil && len(req.Only) > 0 {
			if !slices.Contains(req.Only, original) {
				continue
			}
			matched[original] = true
		}
		// A missing file is reported as missing even when its name is also bad.
		if !fileutil.Exists(backupPath) {
			skip(backupPath, errors.Mark(errors.Newf("backup file %s is missing", backupPath), errors.ErrSourceNotFound))
			continue
		}
		if nameErr != nil {
			skip(backupPath, nameErr)
			continue
		}

		dst := filepath.Join(req.SaveFolder, original)
		if err := fileutil.RestoreCopy(backupPath, dst); err != nil {
			skip(backupPath, err)
			continue
		}
		log.Debug("file restored", "backup", backupPath, "file", dst)
		report.Restored = append(report.Restored, dst)
	}

	for _, name := range req.Only {
		if !matched[name] && ctx.Err() == nil {
			skip(name, errors.Mark(errors.Newf("%s is not in set %s", name, req.SetID), errors.ErrSourceNotFound))
		}
	}

	log.Info("restore finished", "set", req.SetID, "restored", len(report.Restored), "skipped", len(report.Skipped))
	return report, nil
}

// Lookup returns the set with the given id. Returns [ErrSetNotFound] if
// the folder has no such set.
func (m *Manager) Lookup(folder, id string) (backupset.BackupSet, error) {
	set, ok, err := m.Store(folder).Get(id)
	if err != nil {
		return backupset.BackupSet{}, err
	}
	if !ok {
		return backupset.BackupSet{}, errors.Wrapf(ErrSetNotFound, "set %s", id)
	}
	return set, nil
}

// List returns the sets in folder, newest first. Returns
// [ErrNoBackupsFound] if there are none.
func (m *Manager) List(folder string) ([]backupset.BackupSet, error) {
	sets, err := m.Store(folder).Sorted()
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrNoBackupsFound
	}
	return sets, nil
}

// Delete removes a set and its files. Returns [ErrSetNotFound] if the
// folder has no such set.
func (m *Manager) Delete(folder, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok, err := m.Store(folder).DeleteSet(id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrSetNotFound, "set %s", id)
	}
	return nil
}

// Prune removes old sets beyond the specified retention count and returns
// their ids. Keeps the most recent keep sets.
func (m *Manager) Prune(folder string, keep int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, err := m.Store(folder).Prune(keep)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		m.logger.Info("pruned backup sets", "folder", folder, "removed", len(removed), "kept", keep)
	}
	return removed, nil
}

// resolve joins a relative file name onto the save folder.
func resolve(saveFolder, file string) string {
	if filepath.IsAbs(file) || saveFolder == "" {
		return filepath.Clean(file)
	}
	return filepath.Join(saveFolder, file)
}
