package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher notifies when a local feed file changes on disk, so a feed
// author can edit the CSV and see the gallery refresh. It watches the
// file's directory rather than the file itself because most editors
// save atomically (write temp, rename over), which would orphan a
// direct file watch.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	log      *zap.Logger
	onChange func()
	debounce time.Duration
	lastFire time.Time
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher prepares a watcher for path. onChange runs on the watcher
// goroutine after each debounced write or create of that file; keep it
// cheap (send a message, do not parse inline).
func NewWatcher(path string, log *zap.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create feed watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		watcher:  fsw,
		path:     filepath.Clean(path),
		log:      log,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs on its own
// goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Info("watching feed file", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop halts the event loop and releases the underlying watcher. Safe
// to call once after a successful Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

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
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("feed watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	// Editors fire bursts of events per save; collapse them.
	w.mu.Lock()
	if time.Since(w.lastFire) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastFire = time.Now()
	w.mu.Unlock()

	w.log.Debug("feed file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.onChange()
}
