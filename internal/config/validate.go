package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// MinPollInterval is the shortest accepted poll_interval.
const MinPollInterval = 100 * time.Millisecond

// Validation errors for settings fields.
var (
	// ErrPollTooShort indicates poll_interval is below MinPollInterval.
	ErrPollTooShort = errors.New("poll_interval must be at least 100ms")

	// ErrNegativeKeep indicates prune_keep is negative.
	ErrNegativeKeep = errors.New("prune_keep must be >= 0")

	// ErrUnknownLevel indicates an unrecognized log_level.
	ErrUnknownLevel = errors.New("unknown log level")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if s.PollInterval < MinPollInterval {
		errs = append(errs, ErrPollTooShort)
	}

	if s.PruneKeep < 0 {
		errs = append(errs, ErrNegativeKeep)
	}

	if s.LogLevel != "" {
		if _, ok := logging.ParseLevel(s.LogLevel); !ok {
			errs = append(errs, &FieldError{
				Field: KeyLogLevel,
				Value: s.LogLevel,
				Err:   ErrUnknownLevel,
			})
		}
	}

	if err := validatePath(s.BaseDir); err != nil {
		errs = append(errs, &FieldError{
			Field: KeyBaseDir,
			Value: s.BaseDir,
			Err:   err,
		})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific settings field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
