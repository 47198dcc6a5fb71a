package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
	"github.com/lexgrep/lexgrep-cli/internal/logger"
)

// debounceWindow coalesces rapid write events (editors often emit
// several per save) into one rebuild.
const debounceWindow = 500 * time.Millisecond

// Watcher rebuilds the corpus whenever the source document changes and
// swaps the new bundle into the retrieval service. The swap is atomic:
// queries running during a rebuild see the old bundle until the new
// one is fully published.
type Watcher struct {
	source    string
	build     driving.BuildService
	retrieval driving.RetrievalService
}

// NewWatcher creates a watcher for one source document. retrieval may
// be nil when no engine is serving (build-only watch).
func NewWatcher(source string, build driving.BuildService, retrieval driving.RetrievalService) *Watcher {
	return &Watcher{source: source, build: build, retrieval: retrieval}
}

// Watch blocks until ctx is done, rebuilding on every change to the
// source file. A failed rebuild is logged and leaves the previous
// bundle serving.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that replace
	// the file on save would otherwise drop the watch.
	dir := filepath.Dir(w.source)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info("Watching %s for changes", w.source)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.source) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.rebuild(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// rebuild runs one build pass and swaps the serving bundle.
func (w *Watcher) rebuild(ctx context.Context) {
	logger.Section("Watch Rebuild")
	info, err := w.build.Build(ctx, w.source)
	if err != nil {
		logger.Warn("Rebuild failed, keeping previous bundle: %v", err)
		return
	}
	logger.Info("Rebuilt corpus: build %s, %d chunks", info.ID, info.ChunkCount)

	if w.retrieval == nil {
		return
	}
	if err := w.retrieval.Reload(); err != nil {
		logger.Warn("Bundle reload failed, keeping previous bundle: %v", err)
	}
}
