package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after a file event before reloading, so
// editor write bursts trigger a single reload.
const defaultDebounce = 100 * time.Millisecond

// Watcher reloads the configuration file when it changes. Each reload
// produces a brand-new Config; consumers swap to it and the previous one
// stays immutable.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the given config file.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory rather than the file itself: editors replace files
	// on save, which silently drops a watch registered on the file.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	return &Watcher{
		path:     path,
		debounce: defaultDebounce,
		watcher:  fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, invoking onReload with a freshly loaded config after each
// change to the file. Load failures are reported through onError and do not
// stop the watch. Watch returns when the context is cancelled or Stop is
// called.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config), onError func(error)) {
	defer close(w.doneCh)

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			onError(err)

		case <-pending:
			pending = nil
			cfg, err := Load(w.path)
			if err != nil {
				onError(err)
				continue
			}
			onReload(cfg)
		}
	}
}

// Stop ends the watch and releases the underlying file watcher. It must be
// called at most once, after Watch has been started.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
