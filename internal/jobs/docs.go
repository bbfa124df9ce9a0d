// Package jobs provides scheduled background tasks for the redemption system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the redemption service.
//
// # Available Jobs
//
// 1. BurnReconciliationJob - Periodically settles burn runs with an unsettled
// outcome by asking the ledger what actually happened
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileBurnsHandler, logger)
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
// The reconciliation job uses the cron expression "*/15 * * * * *", one sweep
// every fifteen seconds. A sweep that finds nothing to settle is a no-op, so
// the frequency only bounds how long an ambiguous burn outcome can linger.
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; individual run
// failures inside a sweep never stop the rest of the sweep.
package jobs
