package jobs

import (
	"fmt"
	"log/slog"

	"bakeshop/internal/adapters/out/calendar"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	calendarRefreshJob *CalendarRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	provider *calendar.Provider,
	loader ConfigLoader,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		calendarRefreshJob: NewCalendarRefreshJob(provider, loader, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.calendarRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start calendar refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.calendarRefreshJob.Stop()
}
