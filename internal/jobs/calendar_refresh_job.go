package jobs

import (
	"context"
	"log/slog"

	"bakeshop/internal/adapters/out/calendar"

	"github.com/robfig/cron/v3"
)

// ConfigLoader fetches the current calendar configuration from its source
// (environment, file, or an admin backend).
type ConfigLoader func() (calendar.Config, error)

// CalendarRefreshJob periodically re-reads the calendar configuration and
// reloads the provider. The slow cadence is deliberate: minutes of staleness
// on holidays and limits are acceptable, and confirmed orders keep their
// reservations even when a reload lowers a limit.
type CalendarRefreshJob struct {
	provider *calendar.Provider
	loader   ConfigLoader
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCalendarRefreshJob creates a job refreshing the given calendar provider
// from the loader every five minutes.
func NewCalendarRefreshJob(
	provider *calendar.Provider,
	loader ConfigLoader,
	logger *slog.Logger,
) *CalendarRefreshJob {
	return &CalendarRefreshJob{
		provider: provider,
		loader:   loader,
		cron:     cron.New(),
		logger:   logger.With("component", "calendar_refresh_job"),
	}
}

// Start begins the calendar refresh job on a five minute schedule.
func (j *CalendarRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		cfg, err := j.loader()
		if err != nil {
			j.logger.ErrorContext(ctx, "Calendar configuration load failed", "error", err)
			return
		}

		if err := j.provider.Reload(cfg); err != nil {
			// The previous snapshot stays in effect on a bad reload.
			j.logger.ErrorContext(ctx, "Calendar reload rejected", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Calendar refresh job started (running every 5 minutes)")
	return nil
}

// Stop stops the calendar refresh job.
func (j *CalendarRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Calendar refresh job stopped")
}
