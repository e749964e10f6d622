package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rshade/renderwave/internal/logging"
)

// DefaultWatchDebounce coalesces the bursts of events editors produce on save.
const DefaultWatchDebounce = 100 * time.Millisecond

// WatchFunc receives the script reloaded after a change, or the error that
// prevented loading it.
type WatchFunc func(ops []Op, err error)

// Watcher reloads a script whenever its file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange WatchFunc

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewWatcher watches the directory holding path so that editors replacing
// the file via rename are still seen.
func NewWatcher(path string, debounce time.Duration, onChange WatchFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	clean := filepath.Clean(path)
	if err = fw.Add(filepath.Dir(clean)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	return &Watcher{
		watcher:  fw,
		path:     clean,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run delivers reloads until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isScriptEvent(event) {
				log.Debug().Str("file", event.Name).Str("event", event.Op.String()).Msg("script changed")
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// Close stops watching and cancels any pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) isScriptEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	w.onChange(Load(w.path))
}
