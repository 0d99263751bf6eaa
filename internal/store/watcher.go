package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch calls onChange with the name of every stored Markdown file that is
// created, written, removed or renamed, until ctx is done. Changes made
// outside the API (editors, rsync) are reported the same way as uploads.
func (s *Store) Watch(ctx context.Context, log *slog.Logger, onChange func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name := filepath.Base(ev.Name)
				if ev.Op&watchedOps == 0 || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Ext) {
					continue
				}
				log.Debug("upload dir changed", "file", name, "op", ev.Op.String())
				onChange(name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("upload watcher error", "error", err)
			}
		}
	}()

	log.Info("watching upload dir", "dir", s.dir)
	return nil
}
