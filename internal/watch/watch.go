// Package watch reruns a command when its input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Debounce is how long the files must stay quiet before fn runs again.
var Debounce = 100 * time.Millisecond

// Run calls fn once, then again after each write to any of paths, until ctx
// is done. Failures of fn are logged and do not stop the watch.
func Run(
	ctx context.Context,
	paths []string,
	log *zap.SugaredLogger,
	fn func(context.Context) error,
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// editors often replace files, so watch the directories and filter
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	run := func() {
		if err := fn(ctx); err != nil {
			log.Errorw("Run failed", "error", err)
		}
	}

	run()
	log.Infow("Watching for changes", "files", paths)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.Debugw("Input changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(Debounce)
			} else {
				timer.Reset(Debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("File monitoring error", "error", err)

		case <-fire:
			fire = nil
			run()
		}
	}
}
