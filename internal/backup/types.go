package backup

import (
	"github.com/hashicorp/go-multierror"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// Sentinel errors for backup operations.
var (
	// ErrNoFiles indicates a backup request named no files.
	ErrNoFiles = errors.New("no files to back up")

	// ErrSetNotFound indicates no backup set has the requested id.
	ErrSetNotFound = errors.New("backup set not found")

	// ErrNoBackupsFound indicates the backup folder holds no sets.
	ErrNoBackupsFound = errors.New("no backups found")
)

// BackupRequest describes one backup operation.
type BackupRequest struct {
	// BackupFolder receives the copies and the set document.
	BackupFolder string

	// SaveFolder resolves relative entries in Files. May be empty when
	// every entry is absolute.
	SaveFolder string

	// Files are the save files to copy, absolute or relative to SaveFolder.
	Files []string

	// Description is stored with the set; empty uses the default.
	Description string
}

// RestoreRequest describes one restore operation.
type RestoreRequest struct {
	// BackupFolder holds the set document and backup files.
	BackupFolder string

	// SaveFolder receives the restored files under their original names.
	SaveFolder string

	// SetID selects the backup set.
	SetID string

	// Only limits the restore to these original file names. Empty
	// restores the whole set.
	Only []string
}

// FileError is the failure of a single file within an operation.
type FileError struct {
	// Path is the file the operation was working on: the source for a
	// backup, the backup file for a restore.
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// BackupReport is the outcome of [Manager.Backup].
type BackupReport struct {
	// OpID identifies the operation in logs.
	OpID string

	// SetID is the token shared by the copies. Empty when nothing was
	// copied and no set was recorded.
	SetID string

	// Copied are the full paths of the backup files written, in request order.
	Copied []string

	// Errors are the per-file failures, in request order.
	Errors []*FileError
}

// CopiedCount returns the number of files copied.
func (r *BackupReport) CopiedCount() int {
	return len(r.Copied)
}

// Err combines the per-file failures, or returns nil if there were none.
func (r *BackupReport) Err() error {
	return combine(r.Errors)
}

// RestoreReport is the outcome of [Manager.Restore].
type RestoreReport struct {
	// OpID identifies the operation in logs.
	OpID string

	SetID string

	// Restored are the destination paths written, in set order.
	Restored []string

	// Skipped are the backup files that were not restored.
	Skipped []string

	// Errors explain each skipped file, in the same order as Skipped.
	Errors []*FileError
}

// Err combines the per-file failures, or returns nil if there were none.
func (r *RestoreReport) Err() error {
	return combine(r.Errors)
}

func combine(errs []*FileError) error {
	var result *multierror.Error
	for _, fe := range errs {
		result = multierror.Append(result, fe)
	}
	return result.ErrorOrNil()
}
