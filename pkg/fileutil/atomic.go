// Package fileutil provides the file operations savekeep builds on: atomic
// document writes, size-limited document reads, and the backup and restore
// copy primitives.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// DocumentPerm is the permission used for metadata and config documents.
const DocumentPerm os.FileMode = 0o644

// AtomicWriteFile writes data to path through a temp file in the same
// directory followed by a rename, so an interrupted write leaves the
// previous document intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Failures are marked [errors.ErrIO].
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".savekeep-*.tmp")
	if err != nil {
		return errors.IOError(err, "creating temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.IOError(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.IOError(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.IOError(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.IOError(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.IOError(err, "renaming temp file")
	}
	committed = true
	return nil
}

// AtomicWriteJSON writes v as 2-space indented JSON with a trailing newline.
// The file is created with [DocumentPerm].
func AtomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	data = append(data, '\n')
	return AtomicWriteFile(path, data, DocumentPerm)
}
