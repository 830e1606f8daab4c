// Package jobs provides scheduled background tasks for the freight ledger.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the tracking registry.
//
// # Available Jobs
//
// 1. SettlementSweepJob - Runs on a configurable schedule to settle outstanding
// incentive balances for every recipient the registry currently tracks.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(settleDueHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule uses the six-field cron form with a leading seconds
// column. Because settlement is two-phase, an accrued amount is paid out at
// most two sweep periods after it was recorded.
//
// # Error Handling
//
// - An empty sweep is not an error and produces no log output
// - Sweep failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
