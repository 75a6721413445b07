// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/errors"
)

// Sentinel errors for set selection.
var (
	ErrNoSets             = errors.New("no backup sets to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive backup set selection prompts.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// SelectSet prompts the user to choose from sets, which are listed in the
// order given (newest first from [backupset.Store.Sorted]).
//
// Returns:
//   - ErrNoSets if the list is empty
//   - The selected set; empty input picks the first
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
//
// A lone set is still prompted for; restoring overwrites the save folder.
func (s *Selector) SelectSet(sets []backupset.BackupSet) (*backupset.BackupSet, error) {
	if len(sets) == 0 {
		return nil, ErrNoSets
	}

	fmt.Fprintln(s.writer, "Backup sets:")
	for i, set := range sets {
		fmt.Fprintf(s.writer, "  [%d] %s  %s (%d files)\n", i+1, set.Date, set.Description, len(set.Files))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return nil, err
	}

	// Default to first option if empty
	if input == "" {
		return &sets[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(sets) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(sets))
	}

	return &sets[selection-1], nil
}

// Confirm asks a yes/no question defaulting to no.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func (s *Selector) Confirm(question string) bool {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)
	response, err := s.readLine()
	if err != nil {
		return false
	}
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}
	return strings.TrimSpace(input), nil
}
