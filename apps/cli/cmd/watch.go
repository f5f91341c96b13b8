package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// fileWatcher watches the directories of a set of suite and artifact files.
// A write to one of those files, or to any suite file in a watched
// directory, triggers a debounced rerun.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	targets map[string]bool
	delay   time.Duration
	logger  zerolog.Logger
}

// newFileWatcher starts watching before it returns, so writes made after it
// returns are never missed.
func newFileWatcher(paths []string, logger zerolog.Logger) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &fileWatcher{
		watcher: watcher,
		targets: make(map[string]bool),
		delay:   WatchDebounceDelay,
		logger:  logger,
	}

	watchedDirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.targets[abs] = true

		dir := filepath.Dir(abs)
		if watchedDirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
			continue
		}
		watchedDirs[dir] = true
		logger.Debug().Str("dir", dir).Msg("watching")
	}

	if len(watchedDirs) == 0 {
		watcher.Close()
		return nil, fmt.Errorf("nothing to watch")
	}
	return w, nil
}

func (w *fileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.targets[name] || parser.IsSuiteFile(name)
}

// Run calls rerun once per burst of relevant events, after the burst has
// been quiet for the debounce delay. Reruns never overlap. Run blocks until
// ctx is done and closes the watcher before returning.
func (w *fileWatcher) Run(ctx context.Context, rerun func(changed string)) error {
	defer w.watcher.Close()

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
		running       sync.Mutex
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.delay, func() {
				if ctx.Err() != nil {
					return
				}
				running.Lock()
				defer running.Unlock()
				rerun(event.Name)
			})
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
