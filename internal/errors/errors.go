package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, corrupted state).
	ExitSystem = 2
)

// Sentinel errors for the savekeep error taxonomy. Failures are tagged with
// [Mark] so callers can match them with [Is] regardless of wrapping.
var (
	// ErrSourceNotFound indicates the source of a backup or restore copy is missing.
	ErrSourceNotFound = crdb.New("source not found")

	// ErrIO indicates a filesystem failure on copy, mkdir, or document read/write.
	ErrIO = crdb.New("i/o failure")

	// ErrParse indicates a persisted JSON document is malformed.
	ErrParse = crdb.New("malformed document")

	// ErrFormat indicates a timestamp token does not match the expected shape.
	ErrFormat = crdb.New("invalid timestamp token")

	// ErrNameFormat indicates a backup filename carries no timestamp suffix.
	ErrNameFormat = crdb.New("invalid backup file name")

	// ErrDuplicateName indicates a profile with the same name already exists.
	ErrDuplicateName = crdb.New("profile already exists")

	// ErrDuplicateSource indicates two files of one backup map to the same backup name.
	ErrDuplicateSource = crdb.New("duplicate backup name")

	// ErrProfileNotFound indicates the named profile does not exist.
	ErrProfileNotFound = crdb.New("profile not found")

	// ErrInvalidName indicates a profile name cannot be used as a folder name.
	ErrInvalidName = crdb.New("invalid profile name")

	// ErrNoActiveProfile indicates an operation needs an active profile and none is set.
	ErrNoActiveProfile = crdb.New("no active profile")

	// ErrNoSaveFolder indicates the profile has no save folder configured.
	ErrNoSaveFolder = crdb.New("save folder not set")
)

// New returns an error with the given message and a stack trace.
func New(msg string) error { return crdb.New(msg) }

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.Newf(format, args...) }

// Errorf is an alias of [Newf] kept for call sites that read better with it.
func Errorf(format string, args ...any) error { return crdb.Errorf(format, args...) }

// Wrap annotates err with msg. Returns nil if err is nil.
func Wrap(err error, msg string) error { return crdb.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error { return crdb.Wrapf(err, format, args...) }

// Join combines errs into one error, skipping nils. It returns nil when
// every err is nil.
func Join(errs ...error) error { return crdb.Join(errs...) }

// Mark tags err so that Is(err, reference) reports true while the
// original cause stays intact.
func Mark(err error, reference error) error { return crdb.Mark(err, reference) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return crdb.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// IOError wraps err with msg and tags it as [ErrIO].
func IOError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.Wrap(err, msg), ErrIO)
}

// ParseError wraps err with msg and tags it as [ErrParse].
func ParseError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.Wrap(err, msg), ErrParse)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Classify maps an error from the core packages to an ExitError.
// Bookkeeping failures (corrupted or unreadable documents, filesystem
// errors) are system errors; everything else is a user error.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}

	switch {
	case Is(err, ErrParse):
		return NewSystemError(err, "The metadata document is corrupted; fix or move it aside")
	case Is(err, ErrIO):
		return NewSystemError(err, "Check that the backup folder is writable")
	case Is(err, ErrNoActiveProfile):
		return NewUserError(err, "Run: savekeep profile use <name>")
	case Is(err, ErrNoSaveFolder):
		return NewUserError(err, "Run: savekeep profile set-folder <path>")
	case Is(err, ErrProfileNotFound):
		return NewUserError(err, "Run: savekeep profile list")
	default:
		return NewUserError(err, "")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
