// Package naming derives backup filenames from original filenames and
// recovers the original name from a backup filename.
//
// A backup of "save.sav" taken at token 250401_152655 is named
// "save_250401_152655.sav". Recovery strips exactly one trailing
// "_<token>" group from the stem, accepting both the current 13-character
// token and the legacy 11-character one.
//
// An original stem that already ends in a group shaped like a token (for
// example "log_123456_789012.txt") is stripped as well. This is a known
// limitation of the scheme and is kept for compatibility with existing
// backups.
package naming

import (
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/timestamp"
)

// ToBackupName returns stem + "_" + token + ext, splitting originalName at
// its last dot. A name without a dot gets no extension.
func ToBackupName(originalName, token string) string {
	stem, ext := splitExt(originalName)
	return stem + "_" + token + ext
}

// ToOriginalName recovers the original filename from a backup filename.
// It returns an error marked [errors.ErrNameFormat] if the stem carries no
// timestamp suffix.
func ToOriginalName(backupName string) (string, error) {
	stem, ext := splitExt(backupName)
	token, ok := trailingToken(stem)
	if !ok {
		return "", errors.Mark(
			errors.Newf("%q has no _YYMMDD_HHMMSS or _YYMMDD_HHMM suffix", backupName),
			errors.ErrNameFormat,
		)
	}
	return stem[:len(stem)-len(token)-1] + ext, nil
}

// TokenOf returns the timestamp token embedded in a backup filename.
func TokenOf(backupName string) (string, error) {
	stem, _ := splitExt(backupName)
	token, ok := trailingToken(stem)
	if !ok {
		return "", errors.Mark(errors.Newf("%q carries no timestamp token", backupName), errors.ErrNameFormat)
	}
	return token, nil
}

// trailingToken returns the "_"-delimited token at the end of stem.
// The current width is tried first so a 13-character token is never
// mistaken for an 11-character one followed by two digits.
func trailingToken(stem string) (string, bool) {
	for _, width := range []int{timestamp.Width, timestamp.LegacyWidth} {
		if len(stem) < width+1 {
			continue
		}
		cut := len(stem) - width
		if stem[cut-1] != '_' {
			continue
		}
		token := stem[cut:]
		if width == timestamp.Width && timestamp.Valid(token) {
			return token, true
		}
		if width == timestamp.LegacyWidth && timestamp.ValidLegacy(token) {
			return token, true
		}
	}
	return "", false
}

// splitExt splits name at its last dot. The extension keeps the dot.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
