package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds cron specs with seconds. Empty specs use the defaults.
type Schedules struct {
	PendingDispatch string
	Reconciliation  string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pendingDispatchJob *PendingDispatchJob
	reconciliationJob  *WalletReconciliationJob
}

func NewJobManager(
	dispatcher PendingDispatcher,
	reconciler WalletReconciler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingDispatchJob: NewPendingDispatchJob(dispatcher, schedules.PendingDispatch, logger),
		reconciliationJob:  NewWalletReconciliationJob(reconciler, schedules.Reconciliation, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending dispatch job: %w", err)
	}

	if err := jm.reconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pendingDispatchJob.Stop()
		return fmt.Errorf("failed to start wallet reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running passes.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
	jm.pendingDispatchJob.Stop()
}
