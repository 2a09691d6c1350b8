// Package worker contains background loops that run alongside the API.
package worker

import (
	"context"
	"log/slog"
	"time"

	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/metrics"
)

// Default retention worker configuration values.
const (
	defaultRetentionInterval  = 1 * time.Hour
	defaultRetentionMaxAge    = 90 * 24 * time.Hour
	defaultRetentionBatchSize = 500
)

// ExpiredPurger removes one bounded batch of expired entries.
type ExpiredPurger interface {
	Execute(ctx context.Context, cmd appauditlog.PurgeExpiredCommand) (appauditlog.PurgeResult, error)
}

// RetentionWorkerConfig contains configuration for the retention worker.
type RetentionWorkerConfig struct {
	// Interval is the time between purge passes.
	Interval time.Duration

	// MaxAge is how long audit log entries are kept.
	MaxAge time.Duration

	// BatchSize is the maximum number of entries removed per storage call.
	BatchSize int

	// Enabled determines if the worker should run.
	Enabled bool
}

// DefaultRetentionWorkerConfig returns sensible default configuration.
func DefaultRetentionWorkerConfig() RetentionWorkerConfig {
	return RetentionWorkerConfig{
		Interval:  defaultRetentionInterval,
		MaxAge:    defaultRetentionMaxAge,
		BatchSize: defaultRetentionBatchSize,
		Enabled:   true,
	}
}

// RetentionWorker deletes audit log entries older than the retention
// window. Each pass drains expired entries in bounded batches so a
// large backlog cannot hold a single storage call open.
type RetentionWorker struct {
	purger  ExpiredPurger
	logger  *slog.Logger
	metrics *metrics.RetentionMetrics
	config  RetentionWorkerConfig
	now     func() time.Time
}

// NewRetentionWorker creates a new retention worker.
func NewRetentionWorker(
	purger ExpiredPurger,
	logger *slog.Logger,
	retentionMetrics *metrics.RetentionMetrics,
	config RetentionWorkerConfig,
) *RetentionWorker {
	if logger == nil {
		logger = slog.Default()
	}

	return &RetentionWorker{
		purger:  purger,
		logger:  logger,
		metrics: retentionMetrics,
		config:  config,
		now:     time.Now,
	}
}

// Start runs the retention loop until the context is canceled.
func (w *RetentionWorker) Start(ctx context.Context) error {
	if !w.config.Enabled {
		w.logger.InfoContext(ctx, "retention worker disabled")
		return nil
	}

	w.logger.InfoContext(ctx, "starting retention worker",
		slog.Duration("interval", w.config.Interval),
		slog.Duration("max_age", w.config.MaxAge),
		slog.Int("batch_size", w.config.BatchSize),
	)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	// Purge immediately on start
	w.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "retention worker stopped")
			return ctx.Err()
		case <-ticker.C:
			w.runPass(ctx)
		}
	}
}

// RunOnce executes a single purge pass and returns the number of
// entries removed.
func (w *RetentionWorker) RunOnce(ctx context.Context) (int64, error) {
	return w.purgePass(ctx)
}

func (w *RetentionWorker) runPass(ctx context.Context) {
	start := w.now()

	purged, err := w.purgePass(ctx)

	if w.metrics != nil {
		w.metrics.PurgeDuration.Observe(w.now().Sub(start).Seconds())
		w.metrics.LastPurgeTime.Set(float64(w.now().Unix()))
		if err != nil {
			w.metrics.PurgeErrors.Inc()
			w.metrics.PurgeRunsTotal.WithLabelValues("failed").Inc()
		} else {
			w.metrics.PurgeRunsTotal.WithLabelValues("success").Inc()
		}
	}

	if err != nil {
		w.logger.ErrorContext(ctx, "purge pass failed",
			slog.Int64("purged", purged),
			slog.String("error", err.Error()),
		)
		return
	}

	if purged > 0 {
		w.logger.InfoContext(ctx, "purged expired audit entries",
			slog.Int64("purged", purged),
			slog.Duration("took", w.now().Sub(start)),
		)
	}
}

// purgePass drains expired entries batch by batch. A batch that comes
// back smaller than the batch size means the backlog is empty.
func (w *RetentionWorker) purgePass(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.config.MaxAge)

	var total int64
	for {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		result, err := w.purger.Execute(ctx, appauditlog.PurgeExpiredCommand{
			Cutoff:    cutoff,
			BatchSize: w.config.BatchSize,
		})
		if err != nil {
			return total, err
		}

		total += result.PurgedCount
		if w.metrics != nil && result.PurgedCount > 0 {
			w.metrics.PurgedTotal.Add(float64(result.PurgedCount))
			w.metrics.PurgeBatchSize.Observe(float64(result.PurgedCount))
		}

		if result.PurgedCount < int64(w.config.BatchSize) {
			return total, nil
		}
	}
}
