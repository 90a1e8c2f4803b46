package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch rebuilds on changes under the watched directories, debounced
// so a burst of editor writes triggers one rebuild.
func (s *Server) watch(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range s.watchDirs {
		err = addRecursive(watcher, dir)
		if err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go func() {
		var rebuild *time.Timer
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				slog.Debug("change detected", "path", event.Name, "op", event.Op.String())

				// New subdirectories are not watched automatically.
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					err := watcher.Add(event.Name)
					if err != nil {
						slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}

				if rebuild != nil {
					rebuild.Stop()
				}
				rebuild = time.AfterFunc(s.debounce, func() {
					_, err := s.builder.Build()
					if err != nil {
						slog.Error("rebuild failed", "error", err)
						return
					}
					slog.Info("site rebuilt")
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watcher error", "error", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil // nothing to watch yet
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
