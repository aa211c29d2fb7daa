// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CalendarRefreshJob - Runs every five minutes to reload the business
// calendar configuration (opening hours, slot limits, holidays).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(calendarProvider, loader, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed configuration load or a rejected reload is logged and the
// previous calendar snapshot stays in effect until the next run.
package jobs
