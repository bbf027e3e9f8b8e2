package hmr

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is one file whose content differs from the last time it was seen.
type Change struct {
	Path string
	Hash string
}

// Watcher collects file events from a set of directories and reports the
// files whose content actually changed, once per quiet period.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	tracker  *ChangeTracker
	logger   *slog.Logger
}

func NewWatcher(dirs []string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dirs:     dirs,
		debounce: debounce,
		tracker:  NewChangeTracker(),
		logger:   logger,
	}
}

// Run watches until ctx is done, calling onChange with each debounced batch.
func (w *Watcher) Run(ctx context.Context, onChange func([]Change)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.tracker.Forget(event.Name)
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if changes := w.collect(pending); len(changes) > 0 {
				onChange(changes)
			}
			pending = make(map[string]bool)
		}
	}
}

func (w *Watcher) collect(pending map[string]bool) []Change {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var changes []Change
	for _, p := range paths {
		changed, hash, err := w.tracker.DetectChange(p)
		if err != nil {
			w.logger.Debug("skipping unreadable file", "path", p, "error", err)
			continue
		}
		if changed {
			changes = append(changes, Change{Path: p, Hash: hash})
		}
	}
	return changes
}
