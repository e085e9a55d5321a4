package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/akozlov/weather-archive/internal/archive"
	"github.com/akozlov/weather-archive/internal/metrics"
	"github.com/akozlov/weather-archive/internal/store"
)

// Reloader periodically re-reads the dataset file and swaps the loaded
// series. A failed reload keeps the last good series.
type Reloader struct {
	scheduler *gocron.Scheduler
	store     *store.SeriesStore
	path      string
	opts      archive.LoadOptions
	interval  time.Duration
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// New creates a new Reloader.
func New(st *store.SeriesStore, path string, opts archive.LoadOptions, interval time.Duration, logger *slog.Logger, m *metrics.Collector) *Reloader {
	return &Reloader{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     st,
		path:      path,
		opts:      opts,
		interval:  interval,
		logger:    logger,
		metrics:   m,
	}
}

// Start schedules the periodic reload job. An interval of zero disables
// reloading entirely; the dataset then lives for the process lifetime.
func (r *Reloader) Start() error {
	if r.interval <= 0 {
		r.logger.Info("dataset reload disabled")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		started := time.Now()

		series, err := archive.Load(r.path, r.opts)
		if err != nil {
			r.metrics.ReloadFailuresTotal.Inc()
			r.logger.Error("dataset reload failed; keeping current series",
				"path", r.path, "error", err)
			return
		}

		r.store.Replace(series)
		r.metrics.ObservationsLoaded.Set(float64(series.Len()))
		r.metrics.DatasetLoadDuration.Observe(time.Since(started).Seconds())

		first, last := series.Coverage()
		r.logger.Info("dataset reloaded",
			"observations", series.Len(),
			"coverage_start", first,
			"coverage_end", last,
			"duration", time.Since(started))
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Reloader) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
