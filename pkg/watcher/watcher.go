package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/cardsheet/pkg/logging"
)

// Watcher calls onChange, debounced, whenever the watched file is written,
// created, or renamed into place.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce *Debouncer
	log      logging.Log
}

// New watches path. The parent directory is watched so that editors which
// replace the file atomically are still seen.
func New(path string, onChange func(), log logging.Log) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if log == nil {
		log = logging.Nop()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		fs:       fs,
		debounce: NewDebouncer(DefaultDebounceDuration, onChange),
		log:      log.With(logging.String("component", "watcher"), logging.String("path", abs)),
	}, nil
}

// Run delivers events until ctx is done or the watcher is closed. It closes
// the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	defer w.debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.log.Debug("content file changed", logging.String("op", ev.Op.String()))
				w.debounce.Trigger()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", logging.Err(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}
