package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

const eventChannelBuffer = 16

// Watcher implements ports.Watcher using fsnotify. Editors often replace a file
// instead of writing it, so the parent directories are watched and events are
// filtered down to the requested files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	debouncer *Debouncer
	events    chan ports.WatchEvent
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	files map[string]struct{}
}

// NewWatcher creates a watcher whose events are coalesced over window.
func NewWatcher(logger ports.Logger, window time.Duration) *Watcher {
	w := &Watcher{
		logger: logger,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
		done:   make(chan struct{}),
		files:  make(map[string]struct{}),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w
}

// Start watches the given files until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context, files ...string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(domain.ErrWatchFailed, err.Error())
	}
	w.fsWatcher = fsWatcher

	dirs := make(map[string]struct{}, len(files))
	w.mu.Lock()
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.mu.Unlock()
			_ = fsWatcher.Close()
			return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "file", f)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	w.mu.Unlock()

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.fsWatcher.Close()
			return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "dir", dir)
		}
	}

	go w.processEvents(ctx, fsWatcher)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.debouncer.Stop()
	w.shutdown()
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator of coalesced file events. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case event := <-w.events:
				if !yield(event) {
					return
				}
			case <-w.done:
				return
			}
		}
	}
}

func (w *Watcher) shutdown() {
	w.closeOnce.Do(func() { close(w.done) })
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			w.debouncer.Stop()
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			op, ok := convertOp(event.Op)
			if !ok {
				continue
			}
			path := filepath.Clean(event.Name)

			w.mu.Lock()
			_, watched := w.files[path]
			w.mu.Unlock()

			if watched {
				w.debouncer.Add(ports.WatchEvent{Path: path, Operation: op})
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(domain.ErrWatchFailed, err.Error()))
		}
	}
}

// emit publishes a debounced batch until the watcher stops.
func (w *Watcher) emit(batch []ports.WatchEvent) {
	for _, event := range batch {
		select {
		case w.events <- event:
		case <-w.done:
			return
		}
	}
}

func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
