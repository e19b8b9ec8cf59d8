package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher reports deletions under a source root using fsnotify.
// Removals and renames are debounced per path; a path that exists again
// when its window closes is dropped.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    ports.Logger
	ignore    []string

	dirsMu sync.Mutex
	dirs   map[string]struct{}

	emitMu sync.Mutex
	closed bool
	events chan domain.SyncEvent
	done   chan struct{}
	once   sync.Once
}

// NewWatcher creates a watcher that coalesces events within window.
func NewWatcher(window time.Duration, logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(domain.ErrWatcherFailed, err)
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		dirs:      make(map[string]struct{}),
		events:    make(chan domain.SyncEvent, eventChannelBuffer),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.classify)
	return w, nil
}

// Start begins watching root recursively, skipping the directories in ignore.
func (w *Watcher) Start(ctx context.Context, root string, ignore []string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = zerr.New("not a directory")
		}
		return errors.Join(domain.ErrWatcherFailed, zerr.With(err, "root", root))
	}

	for _, dir := range ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	for dir := range w.watchRecursively(root) {
		if err := w.add(dir); err != nil {
			return errors.Join(domain.ErrWatcherFailed, zerr.With(err, "dir", dir))
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and ends the event stream.
func (w *Watcher) Stop() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.debouncer.Stop()

		w.emitMu.Lock()
		w.closed = true
		close(w.events)
		w.emitMu.Unlock()

		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of debounced deletion events.
func (w *Watcher) Events() iter.Seq[domain.SyncEvent] {
	return func(yield func(domain.SyncEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) add(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.dirsMu.Lock()
	w.dirs[filepath.Clean(dir)] = struct{}{}
	w.dirsMu.Unlock()
	return nil
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable directories
			}
			if d.IsDir() {
				if w.shouldSkip(path, d.Name()) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

func (w *Watcher) shouldSkip(path, name string) bool {
	if shouldSkipDirectories[name] {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, ignored := range w.ignore {
		if abs == ignored {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher: " + err.Error())
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.debouncer.Add(filepath.Clean(event.Name))
	case event.Has(fsnotify.Create):
		info, err := os.Lstat(event.Name)
		if err != nil || !info.IsDir() {
			return
		}
		for dir := range w.watchRecursively(event.Name) {
			if err := w.add(dir); err != nil && w.logger != nil {
				w.logger.Warn("watcher: cannot watch " + dir + ": " + err.Error())
			}
		}
	}
}

// classify turns debounced paths into sync events.
func (w *Watcher) classify(paths []string) {
	for _, path := range paths {
		if _, err := os.Lstat(path); err == nil {
			continue
		}

		kind := domain.FileDeleted
		if w.forgetDir(path) {
			kind = domain.DirectoryDeleted
		}
		w.emit(domain.SyncEvent{Kind: kind, Path: path})
	}
}

// forgetDir removes path and its descendants from the watched set and reports
// whether path was a watched directory.
func (w *Watcher) forgetDir(path string) bool {
	w.dirsMu.Lock()
	defer w.dirsMu.Unlock()

	if _, ok := w.dirs[path]; !ok {
		return false
	}
	prefix := path + string(filepath.Separator)
	for dir := range w.dirs {
		if dir == path || strings.HasPrefix(dir, prefix) {
			delete(w.dirs, dir)
		}
	}
	return true
}

func (w *Watcher) emit(event domain.SyncEvent) {
	w.emitMu.Lock()
	defer w.emitMu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- event:
	case <-w.done:
	}
}
