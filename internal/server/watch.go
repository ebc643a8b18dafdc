package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/proposa/internal/logger"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

const reloadDebounce = 200 * time.Millisecond

// watcher reloads the store when its file is rewritten by another process.
// Events caused by the store's own saves are ignored by content.
// The parent directory is watched because saves replace the file by rename.
type watcher struct {
	store *workspace.Store
	log   *logger.Logger
	fsw   *fsnotify.Watcher
	file  string
}

func newWatcher(store *workspace.Store, log *logger.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path, err := filepath.Abs(store.Path())
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &watcher{store: store, log: log, fsw: fsw, file: path}, nil
}

func (w *watcher) close() {
	_ = w.fsw.Close()
}

func (w *watcher) run(ctx context.Context) {
	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "workspace watcher error", "error", err)

		case <-timer.C:
			changed, err := w.store.Reload()
			if err != nil {
				w.log.Warn(ctx, "workspace reload failed, keeping previous state", "path", w.file, "error", err)
				continue
			}
			if changed {
				w.log.Info(ctx, "workspace reloaded", "path", w.file)
			}
		}
	}
}
