// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the service needs.
//
// # Available Jobs
//
// 1. DispatchRetryJob - Runs every 30 seconds to re-dispatch orders still
// waiting for a courier, skipping orders that exhausted their attempt budget
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchHandler, uowFactory, maxAttempts, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The retry job treats an empty or offline fleet, lost dispatch races, and
// concurrently assigned orders as expected outcomes and stays quiet about
// them; everything else is logged.
package jobs
