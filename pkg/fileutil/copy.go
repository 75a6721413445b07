package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// DirPerm is the permission used for directories created while copying.
const DirPerm os.FileMode = 0o755

// BackupCopy copies src to dst for a backup. The parent of dst is created
// if needed and an existing dst is overwritten. Content and permission bits
// are copied; the access and modification times of dst are set to the copy
// time so backups sort by when they were taken.
//
// Returns an error marked [errors.ErrSourceNotFound] if src does not exist
// or is not a regular file, and [errors.ErrIO] for other failures.
func BackupCopy(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		return err
	}
	now := time.Now()
	if err := os.Chtimes(dst, now, now); err != nil {
		return errors.IOError(err, "setting backup timestamps")
	}
	return nil
}

// RestoreCopy copies a backup file src over dst. The parent of dst is
// created if needed and an existing dst is overwritten. Timestamps are not
// carried over.
//
// Returns an error marked [errors.ErrSourceNotFound] if src does not exist
// or is not a regular file, and [errors.ErrIO] for other failures.
func RestoreCopy(src, dst string) error {
	return copyFile(src, dst)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// copyFile copies the contents and mode of src to dst. A failure partway
// leaves dst in whatever state the write reached.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Mark(errors.Wrapf(err, "opening %s", src), errors.ErrSourceNotFound)
		}
		return errors.IOError(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.IOError(err, "stat source file")
	}
	if !info.Mode().IsRegular() {
		return errors.Mark(errors.Newf("%s is not a regular file", src), errors.ErrSourceNotFound)
	}

	if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return errors.IOError(err, "creating destination directory")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.IOError(err, "creating destination file")
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.IOError(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return errors.IOError(err, "closing destination file")
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.IOError(err, "setting permissions")
	}
	return nil
}
