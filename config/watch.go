package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch calls onChange with the reloaded layout (or the load error) each time the file at path is written or replaced.
// The directory is watched rather than the file, so editors that save by renaming are still seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Layout, error)) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	zap.S().Infof("watching %s", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			l, err := Load(path)
			if err != nil {
				zap.S().Warnf("reload %s: %s", path, err)
			} else {
				zap.S().Infof("reloaded %s", path)
			}
			onChange(l, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			zap.S().Errorf("watch %s: %s", path, err)
		}
	}
}
