// Package watch re-runs the remesh pipeline whenever a source mesh
// file changes on disk.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/limbicnation/remesh/bridge/core"
)

// DefaultDebounce coalesces the burst of events editors emit when they
// save a file.
const DefaultDebounce = 300 * time.Millisecond

// Runner executes one pipeline run for the watched file.
type Runner func(ctx context.Context) error

// Watcher watches a single mesh file and triggers the runner on change.
// Runs are serial: changes arriving while a run is in progress collapse
// into one follow-up run.
type Watcher struct {
	path     string
	run      Runner
	debounce time.Duration

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func New(path string, run Runner) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		run:      run,
		debounce: DefaultDebounce,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Start runs once immediately, then blocks dispatching runs until the
// context is done or Close is called. The containing directory is
// watched rather than the file itself, since editors typically replace
// files by rename.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.dispatch(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			core.LogDebug("change detected: %s", ev)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			core.LogWarn("watch: %v", err)
		case <-timer.C:
			w.dispatch(ctx)
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context) {
	if err := w.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		core.LogError("watched run: %v", err)
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
