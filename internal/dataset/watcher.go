package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/events"
)

// Watcher reloads the dataset when the input file changes on disk. A
// failed reload keeps the previous good snapshot.
type Watcher struct {
	path       string
	opts       Options
	store      *Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
}

// NewWatcher constructs a watcher for the given input file.
func NewWatcher(path string, opts Options, store *Store, dispatcher events.Dispatcher, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files via rename, which drops
	// a watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:       path,
		opts:       opts,
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		watcher:    fsw,
	}, nil
}

// Run processes file events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	const debounce = 250 * time.Millisecond
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { w.reload(ctx) })
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", zap.Error(err))
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) reload(ctx context.Context) {
	// A debounced timer may fire after shutdown; never swap the snapshot then.
	if ctx.Err() != nil {
		return
	}
	ds, err := LoadWithLogging(w.path, w.opts, w.logger)
	if err != nil {
		w.logger.Error("dataset reload failed, keeping previous snapshot", zap.Error(err))
		_ = w.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventDatasetLoadFailed,
			Source:    w.path,
			Timestamp: time.Now(),
			Payload:   events.DatasetLoadFailedPayload{Error: err.Error()},
		})
		return
	}

	w.store.Swap(ds)
	_ = w.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDatasetReloaded,
		Source:    w.path,
		Timestamp: time.Now(),
		Payload: events.DatasetReloadedPayload{
			Rows:     ds.Len(),
			Warnings: len(ds.Warnings()),
			LoadedAt: ds.LoadedAt(),
		},
	})
}
