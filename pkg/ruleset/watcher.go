package ruleset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/pvframework/pkg/logger"
)

// DefaultDebounce is the quiet period a Watcher waits for before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a Registry from a directory whenever a rule-set file in it
// changes. Bursts of events are collapsed into one reload.
type Watcher struct {
	registry *Registry
	dir      string
	debounce time.Duration
	log      *slog.Logger
	onReload func(error)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// OnReload registers a callback run after every reload attempt with its error.
func OnReload(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher creates a Watcher for dir.
func NewWatcher(registry *Registry, dir string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		registry: registry,
		dir:      dir,
		debounce: DefaultDebounce,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. A failed reload is logged and the previous
// rule sets stay active.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create rule set watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.InfoContext(ctx, "watching rule sets", slog.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("rule set watcher closed")
			}
			if relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("rule set watcher closed")
			}
			w.log.ErrorContext(ctx, "rule set watcher error", logger.Error(err))
		case <-timer.C:
			err := w.registry.Reload(w.dir)
			if err != nil {
				w.log.ErrorContext(ctx, "rule set reload failed", logger.Error(err))
			} else {
				w.log.InfoContext(ctx, "rule sets reloaded", logger.Count("rulesets", w.registry.Len()))
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains([]string{".yaml", ".yml"}, strings.ToLower(filepath.Ext(base)))
}
