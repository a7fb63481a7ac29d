package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a provider whenever its file changes on disk.
type Watcher struct {
	provider *Provider
	logger   *slog.Logger

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for provider's file.
func NewWatcher(provider *Provider, logger *slog.Logger) *Watcher {
	return &Watcher{provider: provider, logger: logger}
}

// Start watches the parent directory so that atomic replacements are noticed too.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(w.provider.Path())
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	_ = w.watcher.Close()
	w.wg.Wait()
	w.cancel = nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	target := filepath.Clean(w.provider.Path())

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.provider.Load(); err != nil {
				w.logger.Error("fallback reload failed, keeping previous data", slog.String("error", err.Error()))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("fallback watcher error", slog.String("error", err.Error()))
		}
	}
}
