package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/cli/prompt"
	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// SetPicker chooses one backup set from a list.
type SetPicker interface {
	Pick(sets []backupset.BackupSet) (*backupset.BackupSet, error)
}

// FuzzyPicker picks a set with a full-screen fuzzy finder.
type FuzzyPicker struct{}

// Pick runs the finder over sets. Aborting the finder returns
// [prompt.ErrSelectionCancelled].
func (FuzzyPicker) Pick(sets []backupset.BackupSet) (*backupset.BackupSet, error) {
	if len(sets) == 0 {
		return nil, prompt.ErrNoSets
	}

	idx, err := fuzzyfinder.Find(
		sets,
		func(i int) string {
			return SetLine(sets[i])
		},
		fuzzyfinder.WithPromptString("restore> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return SetPreview(sets[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, prompt.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &sets[idx], nil
}

// PromptPicker picks a set with a numbered prompt.
type PromptPicker struct {
	Selector *prompt.Selector
}

// Pick delegates to [prompt.Selector.SelectSet].
func (p PromptPicker) Pick(sets []backupset.BackupSet) (*backupset.BackupSet, error) {
	return p.Selector.SelectSet(sets)
}

// NewSetPicker returns a fuzzy picker when in and out are both terminals
// and a numbered prompt over in/out otherwise.
func NewSetPicker(in io.Reader, out io.Writer) SetPicker {
	if logging.IsTerminal(in) && logging.IsTerminal(out) {
		return FuzzyPicker{}
	}
	return PromptPicker{Selector: prompt.NewSelectorWithIO(in, out)}
}

// SetLine renders a set as one line for lists and finders.
func SetLine(set backupset.BackupSet) string {
	return fmt.Sprintf("%s  %s  (%d files)", set.ID, set.Description, len(set.Files))
}

// SetPreview renders a set's details for a preview pane.
func SetPreview(set backupset.BackupSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:   %s\n", set.ID)
	fmt.Fprintf(&b, "Date: %s\n", set.Date)
	fmt.Fprintf(&b, "\n%s\n\nFiles:\n", set.Description)
	for _, f := range set.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	return b.String()
}
