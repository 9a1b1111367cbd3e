package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultPendingDispatchSpec retries pending tasks every 15 seconds.
const DefaultPendingDispatchSpec = "*/15 * * * * *"

const pendingDispatchBatch = 50

type PendingDispatcher interface {
	Handle(ctx context.Context, command commands.DispatchPendingTasksCommand) (int, error)
}

// PendingDispatchJob retries assignment for tasks that found no courier at creation.
type PendingDispatchJob struct {
	handler PendingDispatcher
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewPendingDispatchJob(handler PendingDispatcher, spec string, logger *slog.Logger) *PendingDispatchJob {
	if spec == "" {
		spec = DefaultPendingDispatchSpec
	}
	return &PendingDispatchJob{
		handler: handler,
		spec:    spec,
		timeout: 10 * time.Second,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "pending_dispatch_job"),
	}
}

func (j *PendingDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pending dispatch job started", "schedule", j.spec)
	return nil
}

// RunOnce performs a single dispatch pass and returns the number of tasks assigned.
func (j *PendingDispatchJob) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewDispatchPendingTasksCommand(pendingDispatchBatch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending dispatch job failed", "error", err)
		return 0
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending dispatch job failed", "error", err, "assigned", assigned)
		return assigned
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Pending tasks assigned", "assigned", assigned)
	}
	return assigned
}

// Stop waits for a running pass to finish.
func (j *PendingDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending dispatch job stopped")
}
