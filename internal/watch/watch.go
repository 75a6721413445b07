// Package watch reports the contents of a save folder as they change.
//
// A [Poller] re-lists the folder on a fixed interval and whenever fsnotify
// reports activity in it, and hands each listing that differs from the
// previous one to a callback. It only reads the folder. A folder that does
// not exist lists as empty, so a poller can be started before the game has
// written its first save.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/logging"
)

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 2 * time.Second

// File is one entry of a listing.
type File struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Snapshot is a listing of the regular files in a folder, sorted by name.
type Snapshot struct {
	Folder string    `json:"folder"`
	Files  []File    `json:"files"`
	Taken  time.Time `json:"taken"`
}

// Names returns the file names in listing order.
func (s Snapshot) Names() []string {
	names := make([]string, len(s.Files))
	for i, f := range s.Files {
		names[i] = f.Name
	}
	return names
}

// Same reports whether two snapshots list the same files with the same
// sizes and modification times.
func (s Snapshot) Same(other Snapshot) bool {
	return slices.EqualFunc(s.Files, other.Files, func(a, b File) bool {
		return a.Name == b.Name && a.Size == b.Size && a.ModTime.Equal(b.ModTime)
	})
}

// List reads the regular files directly inside folder. A missing folder
// yields an empty snapshot and no error.
func List(folder string) (Snapshot, error) {
	snap := Snapshot{Folder: folder, Files: []File{}, Taken: time.Now()}

	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return snap, errors.IOError(err, "listing "+folder)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		snap.Files = append(snap.Files, File{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	slices.SortFunc(snap.Files, func(a, b File) int {
		return strings.Compare(a.Name, b.Name)
	})
	return snap, nil
}

// Poller watches one folder.
type Poller struct {
	folder   string
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the re-list interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger used for poller diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Poller for folder.
func New(folder string, opts ...Option) *Poller {
	p := &Poller{
		folder:   folder,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run lists the folder immediately and then on every tick or filesystem
// event until ctx is cancelled. onChange receives the first listing and
// every later listing that differs from the one before it. Calls to
// onChange are sequential. Run returns nil once ctx is cancelled.
func (p *Poller) Run(ctx context.Context, onChange func(Snapshot)) error {
	g, ctx := errgroup.WithContext(ctx)
	wake := make(chan struct{}, 1)

	g.Go(func() error {
		return p.notify(ctx, wake)
	})
	g.Go(func() error {
		return p.poll(ctx, wake, onChange)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// notify forwards fsnotify activity on the folder to wake. When the folder
// cannot be watched the poller falls back to the ticker alone.
func (p *Poller) notify(ctx context.Context, wake chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Warn("filesystem events unavailable, polling only", "error", err)
		return nil
	}
	defer w.Close()

	if err := w.Add(p.folder); err != nil {
		p.logger.Debug("folder not watchable, polling only", "folder", p.folder, "error", err)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			p.logger.Log(ctx, logging.LevelTrace, "folder event", "op", event.Op.String(), "file", filepath.Base(event.Name))
			select {
			case wake <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watcher error", "folder", p.folder, "error", err)
		}
	}
}

func (p *Poller) poll(ctx context.Context, wake <-chan struct{}, onChange func(Snapshot)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last *Snapshot
	check := func() {
		snap, err := List(p.folder)
		if err != nil {
			p.logger.Warn("listing save folder failed", "folder", p.folder, "error", err)
			return
		}
		if last != nil && last.Same(snap) {
			return
		}
		if len(snap.Files) == 0 && last == nil {
			p.logger.Debug("save folder empty or missing", "folder", p.folder)
		}
		last = &snap
		onChange(snap)
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			check()
		case <-wake:
			check()
		}
	}
}
