// Package errors provides error handling conventions for savekeep.
//
// It re-exports the helpers of github.com/cockroachdb/errors so the rest of
// the module has a single import for wrapping, and defines the sentinel
// errors of the savekeep taxonomy:
//
//   - [ErrSourceNotFound]: backup or restore source missing
//   - [ErrIO]: filesystem failure on copy, mkdir, or document read/write
//   - [ErrParse]: malformed JSON document
//   - [ErrFormat], [ErrNameFormat]: timestamp or filename has the wrong shape
//   - [ErrDuplicateName]: profile creation collision
//   - [ErrDuplicateSource]: two files of one backup share a base name
//
// Errors are tagged with [Mark], which keeps the original cause in the chain
// while making [Is] match the sentinel:
//
//	if errors.Is(err, errors.ErrParse) {
//	    // treat the set document as unreadable
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, unknown profile, etc.)
//   - ExitSystem (2): System-related error (I/O, corrupted documents)
//
// [Classify] turns any core error into an [ExitError] with a suggestion.
package errors
