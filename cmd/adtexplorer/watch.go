package main

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/joshuapare/adtkit/internal/logger"
)

// reloadDelay coalesces the burst of events an editor or an atomic rename
// produces.
const reloadDelay = 150 * time.Millisecond

// watchFile calls send with a fileChangedMsg whenever path is written or
// replaced. The parent directory is watched because atomic writers rename
// a new file over path. Watching stops when ctx is done.
func watchFile(ctx context.Context, path string, send func(tea.Msg)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		defer func() { _ = w.Close() }()
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logger.L.Debug("watch event", "path", event.Name, "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDelay, func() { send(fileChangedMsg{}) })
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.L.Warn("watch error", "path", abs, "error", err)
			}
		}
	}()
	return nil
}
