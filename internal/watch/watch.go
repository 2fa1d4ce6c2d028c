// Package watch drops the site's template caches whenever a template on disk
// changes, so edits show up without restarting the server.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Resetter is implemented by caches that can be emptied.
type Resetter interface {
	Reset()
}

// Watcher resets a cache on every change below a directory.
type Watcher struct {
	dir     string
	cache   Resetter
	logger  *slog.Logger
	watcher *fsnotify.Watcher
}

// New watches dir and every directory below it. Directories created later
// are watched as they appear.
func New(dir string, cache Resetter, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		dir:     dir,
		cache:   cache,
		logger:  logger,
		watcher: watcher,
	}
	if err := w.addTree(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run handles events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("error closing watcher", "error", err)
		}
	}()
	w.logger.Info("watching templates", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			// the file may be gone already; the reset below still applies
			w.logger.Debug("not watching new path", "path", event.Name, "error", err)
		}
	}
	w.cache.Reset()
	w.logger.Info("templates changed, cache reset", "path", event.Name, "op", event.Op.String())
}
