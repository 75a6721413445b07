package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// MaxDocumentSize bounds the metadata and config documents we read (4MB).
// Expected documents hold tens of entries.
const MaxDocumentSize = 4 << 20

// ErrFileTooLarge indicates that a document exceeded MaxDocumentSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxDocumentSize)

// ReadDocument reads a document of at most MaxDocumentSize bytes.
//
// A missing file is reported with an error satisfying
// errors.Is(err, os.ErrNotExist) so callers can treat it as empty. Other
// failures are marked [errors.ErrIO].
func ReadDocument(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, errors.IOError(err, "opening document")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxDocumentSize {
		return nil, errors.Mark(ErrFileTooLarge, errors.ErrIO)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return nil, errors.IOError(err, "reading document")
	}
	if len(data) > MaxDocumentSize {
		return nil, errors.Mark(ErrFileTooLarge, errors.ErrIO)
	}
	return data, nil
}
