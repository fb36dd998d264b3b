package gridfile

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/pdrpinto/gridpath"
)

// Watcher holds the latest grid loaded from a file and reloads it when the
// file changes. A reload that fails keeps the previous grid.
type Watcher struct {
	path          string
	width, height int
	logger        *slog.Logger

	mu       sync.RWMutex
	current  *gridpath.Grid
	onChange []func(*gridpath.Grid)
	onError  []func(error)
}

// NewWatcher performs the initial load of path.
func NewWatcher(path string, width, height int, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{path: path, width: width, height: height, logger: logger}
	g, err := LoadFile(path, width, height)
	if err != nil {
		return nil, err
	}
	w.current = g
	return w, nil
}

// Grid returns the latest successfully loaded grid. Grids are never modified
// after loading, so the result is safe to search concurrently.
func (w *Watcher) Grid() *gridpath.Grid {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after every successful reload.
func (w *Watcher) OnChange(fn func(*gridpath.Grid)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// OnError registers a callback invoked when a reload fails.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, fn)
}

// Reload forces an immediate re-read of the grid file.
func (w *Watcher) Reload() (*gridpath.Grid, error) {
	g, err := LoadFile(w.path, w.width, w.height)
	if err != nil {
		w.mu.RLock()
		callbacks := append([]func(error){}, w.onError...)
		w.mu.RUnlock()
		for _, fn := range callbacks {
			fn(err)
		}
		return nil, err
	}
	w.mu.Lock()
	w.current = g
	callbacks := append([]func(*gridpath.Grid){}, w.onChange...)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(g)
	}
	return g, nil
}

// Watch starts a background goroutine that reloads the grid on file writes.
// Call the returned stop function to clean up.
func (w *Watcher) Watch() (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("grid watcher: %w", err)
	}
	if err := fw.Add(w.path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("grid watcher add %s: %w", w.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer fw.Close()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if _, err := w.Reload(); err != nil {
						w.logger.Warn("grid reload failed, keeping previous grid", "path", w.path, "err", err)
						continue
					}
					w.logger.Info("grid reloaded", "path", w.path)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("grid watcher error", "path", w.path, "err", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
