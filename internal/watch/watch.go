// Package watch rebuilds on file changes.
//
// A Watcher observes the directories holding a fixed set of files and calls
// a rebuild function once a burst of events on those files has settled.
// Rebuilds run one at a time on the watcher's goroutine.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2site/internal/logfields"
)

// DefaultDebounce is how long events must be quiet before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoPaths is returned when a watcher is created without files.
var ErrNoPaths = errors.New("watch: no files to watch")

// Watcher monitors files and triggers debounced rebuilds.
type Watcher struct {
	files    map[string]struct{} // absolute paths
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher for the given files. Empty paths are ignored.
func New(paths []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	seenDirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}

		// Editors replace files by rename, so the directory is watched.
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, ErrNoPaths
	}
	return w, nil
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	return len(w.files)
}

// Run watches until ctx is cancelled, calling rebuild after each settled burst
// of changes. Rebuild errors are logged and do not stop the loop.
// Returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: adding %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", logfields.Path(dir))
	}
	w.logger.Info("watching for changes", slog.Int("files", len(w.files)))

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			start := time.Now()
			w.logger.Info("rebuilding", logfields.Path(pending))
			if err := rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("rebuild complete", logfields.Duration(time.Since(start)))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether event touches a watched file in a way that can
// change its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
