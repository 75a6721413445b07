// Package timestamp encodes creation times into the fixed-width tokens
// embedded in backup filenames and used as backup set identifiers.
//
// The current token is YYMMDD_HHMMSS (13 characters). Backups written by
// earlier versions used YYMMDD_HHMM (11 characters); those can be parsed but
// are never generated.
package timestamp

import (
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// Token layouts in Go reference-time notation.
const (
	Layout       = "060102_150405"
	LegacyLayout = "060102_1504"
)

// Token widths in characters.
const (
	Width       = len(Layout)
	LegacyWidth = len(LegacyLayout)
)

// DateLayout is the human-readable rendering of a token.
const DateLayout = "2006-01-02 15:04:05"

// Render formats t as a current-width token. It never fails.
func Render(t time.Time) string {
	return t.Format(Layout)
}

// Now returns the token for the current local time.
func Now() string {
	return Render(time.Now())
}

// Parse parses a current-width token in local time.
// It returns an error marked [errors.ErrFormat] if the token has the wrong
// shape or a field is out of range.
func Parse(token string) (time.Time, error) {
	if !Valid(token) {
		return time.Time{}, errors.Mark(errors.Newf("token %q does not match %s", token, Layout), errors.ErrFormat)
	}
	t, err := time.ParseInLocation(Layout, token, time.Local)
	if err != nil {
		return time.Time{}, errors.Mark(errors.Wrapf(err, "token %q", token), errors.ErrFormat)
	}
	return t, nil
}

// ParseAny parses a token of either the current or the legacy width.
func ParseAny(token string) (time.Time, error) {
	if ValidLegacy(token) {
		t, err := time.ParseInLocation(LegacyLayout, token, time.Local)
		if err != nil {
			return time.Time{}, errors.Mark(errors.Wrapf(err, "token %q", token), errors.ErrFormat)
		}
		return t, nil
	}
	return Parse(token)
}

// Valid reports whether token has the current-width shape (\d{6}_\d{6}).
// Field ranges are not checked.
func Valid(token string) bool {
	return shaped(token, 6)
}

// ValidLegacy reports whether token has the legacy shape (\d{6}_\d{4}).
func ValidLegacy(token string) bool {
	return shaped(token, 4)
}

// HumanDate renders a current-width token as a DateLayout string.
func HumanDate(token string) (string, error) {
	t, err := Parse(token)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// shaped checks for six digits, an underscore, then timeDigits digits.
func shaped(s string, timeDigits int) bool {
	if len(s) != 7+timeDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 6 {
			if s[i] != '_' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
