package backupset

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/timestamp"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// DocumentName is the metadata document kept in every backup folder.
const DocumentName = "backup_sets.json"

// BackupSet is one backup operation's record.
type BackupSet struct {
	// ID is the timestamp token shared by every file in the set.
	ID string `json:"id"`

	// Date is the human-readable rendering of ID.
	Date string `json:"date"`

	// Description is free text, defaulted to "Backup (<date>)".
	Description string `json:"description"`

	// Files are backup filenames (not paths) in backup order.
	Files []string `json:"files"`
}

// Document is the on-disk shape of backup_sets.json, keyed by set ID.
type Document map[string]BackupSet

// Store reads and writes the set document of a single backup folder.
// It assumes a single writer per folder; concurrent writers from separate
// processes can lose updates.
type Store struct {
	folder string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store for the given backup folder.
func New(folder string, opts ...Option) *Store {
	s := &Store{
		folder: folder,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Folder returns the backup folder the store manages.
func (s *Store) Folder() string {
	return s.folder
}

// DocumentPath returns the full path of the set document.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.folder, DocumentName)
}

// CreateSet records a set under id with the given backup filenames and
// returns id. An existing set with the same id is replaced.
//
// An empty description defaults to "Backup (<date>)". The existing
// document is read, the entry inserted, and the whole document written
// back atomically. Returns an error marked [errors.ErrParse] if the
// existing document is malformed and [errors.ErrIO] on read or write
// failure.
func (s *Store) CreateSet(id string, files []string, description string) (string, error) {
	date, err := timestamp.HumanDate(id)
	if err != nil {
		return "", errors.Wrap(err, "set id")
	}
	if strings.TrimSpace(description) == "" {
		description = "Backup (" + date + ")"
	}

	doc, err := s.load()
	if err != nil {
		return "", err
	}

	doc[id] = BackupSet{
		ID:          id,
		Date:        date,
		Description: description,
		Files:       append([]string{}, files...),
	}

	if err := s.write(doc); err != nil {
		return "", err
	}

	s.logger.Debug("backup set recorded", "folder", s.folder, "id", id, "files", len(files))
	return id, nil
}

// List returns every set in the folder keyed by id. A folder without a
// document has no sets. Returns an error marked [errors.ErrParse] if the
// document is malformed.
func (s *Store) List() (map[string]BackupSet, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Sorted returns the sets ordered newest first.
func (s *Store) Sorted() ([]BackupSet, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	sets := make([]BackupSet, 0, len(doc))
	for _, set := range doc {
		sets = append(sets, set)
	}
	// Tokens sort lexically in chronological order.
	slices.SortFunc(sets, func(a, b BackupSet) int {
		return strings.Compare(b.ID, a.ID)
	})
	return sets, nil
}

// Get returns the set with the given id and whether it exists.
func (s *Store) Get(id string) (BackupSet, bool, error) {
	doc, err := s.load()
	if err != nil {
		return BackupSet{}, false, err
	}
	set, ok := doc[id]
	return set, ok, nil
}

// Latest returns the newest set, if any.
func (s *Store) Latest() (BackupSet, bool, error) {
	sets, err := s.Sorted()
	if err != nil || len(sets) == 0 {
		return BackupSet{}, false, err
	}
	return sets[0], true, nil
}

// ResolveFiles returns the full paths of a set's files in stored order.
// An unknown id yields an empty slice and no error.
func (s *Store) ResolveFiles(id string) ([]string, error) {
	set, ok, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	paths := make([]string, len(set.Files))
	for i, name := range set.Files {
		paths[i] = filepath.Join(s.folder, name)
	}
	return paths, nil
}

// DeleteSet removes a set's record and its backup files. Files that are
// already gone are ignored. Returns false if no set has that id.
func (s *Store) DeleteSet(id string) (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}
	set, ok := doc[id]
	if !ok {
		return false, nil
	}

	for _, name := range set.Files {
		path := filepath.Join(s.folder, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, errors.IOError(err, "removing "+name)
		}
	}

	delete(doc, id)
	if err := s.write(doc); err != nil {
		return false, err
	}
	s.logger.Info("backup set deleted", "folder", s.folder, "id", id)
	return true, nil
}

// Prune deletes every set beyond the keep most recent ones and returns the
// deleted ids, oldest last.
func (s *Store) Prune(keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}
	sets, err := s.Sorted()
	if err != nil {
		return nil, err
	}
	if len(sets) <= keep {
		return nil, nil
	}

	var removed []string
	for _, set := range sets[keep:] {
		if _, err := s.DeleteSet(set.ID); err != nil {
			return removed, errors.Wrapf(err, "pruning %s", set.ID)
		}
		removed = append(removed, set.ID)
	}
	return removed, nil
}

// load reads the document, returning an empty one if it does not exist.
func (s *Store) load() (Document, error) {
	data, err := fileutil.ReadDocument(s.DocumentPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", DocumentName)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseError(err, "parsing "+s.DocumentPath())
	}
	// A literal "null" document decodes to a nil map.
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (s *Store) write(doc Document) error {
	if err := os.MkdirAll(s.folder, fileutil.DirPerm); err != nil {
		return errors.IOError(err, "creating backup folder")
	}
	if err := fileutil.AtomicWriteJSON(s.DocumentPath(), doc); err != nil {
		return errors.Wrapf(err, "writing %s", DocumentName)
	}
	return nil
}
