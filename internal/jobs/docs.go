// Package jobs provides scheduled background tasks for the dispatch system.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds-precision specs.
// Overlapping runs of the same job are skipped.
//
// # Available Jobs
//
//  1. PendingDispatchJob - every 15 seconds by default, retries assignment for pending tasks
//  2. WalletReconciliationJob - daily at 03:00 by default, logs wallets whose balance differs from their ledger
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, reconcileHandler, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Errors are logged and never stop the schedule. A failed start stops any
// already running jobs.
package jobs
