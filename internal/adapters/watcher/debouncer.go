// Package watcher reports changes to declaration files.
package watcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"go.trai.ch/bidsapp/internal/core/ports"
)

// Debouncer collects file events and hands them over in one batch once no
// event arrived for the window. A path seen several times is reported once,
// with the last operation.
type Debouncer struct {
	window  time.Duration
	deliver func([]ports.WatchEvent)

	mu    sync.Mutex
	last  map[string]ports.WatchOp
	timer *time.Timer
}

// NewDebouncer creates a debouncer delivering batches to deliver.
func NewDebouncer(window time.Duration, deliver func([]ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		window:  window,
		deliver: deliver,
		last:    make(map[string]ports.WatchOp),
	}
}

// Add records an event and restarts the window.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last[event.Path] = event.Operation
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
		return
	}
	d.timer.Reset(d.window)
}

// Flush delivers the collected events immediately. It does nothing while a
// delivery triggered by the timer is in progress.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	batch := d.take()
	d.mu.Unlock()

	d.send(batch)
}

// Stop discards the collected events.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.last)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	batch := d.take()
	d.mu.Unlock()

	d.send(batch)
}

func (d *Debouncer) send(batch []ports.WatchEvent) {
	if len(batch) == 0 || d.deliver == nil {
		return
	}
	d.deliver(batch)
}

// take empties the collected events, ordered by path. d.mu must be held.
func (d *Debouncer) take() []ports.WatchEvent {
	batch := make([]ports.WatchEvent, 0, len(d.last))
	for path, op := range d.last {
		batch = append(batch, ports.WatchEvent{Path: path, Operation: op})
	}
	clear(d.last)
	slices.SortFunc(batch, func(a, b ports.WatchEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return batch
}
