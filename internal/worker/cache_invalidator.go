package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/cache"
	"github.com/spec-kit/hr-analytics/internal/events"
)

// StartCacheInvalidator drops memoized dashboard results whenever the
// dataset is reloaded, so stale aggregates never outlive their snapshot.
func StartCacheInvalidator(resultCache *cache.ResultCache, dispatcher events.Dispatcher, logger *zap.Logger) {
	if resultCache == nil || dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventDatasetReloaded, func(ctx context.Context, event events.Event) error {
		if err := resultCache.Flush(ctx); err != nil {
			logger.Warn("failed to flush dashboard cache after reload", zap.Error(err))
			return err
		}
		logger.Info("dashboard cache flushed", zap.String("source", event.Source))
		return nil
	})
}
