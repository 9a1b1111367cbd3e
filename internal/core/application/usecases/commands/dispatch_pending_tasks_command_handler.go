package commands

import (
	"context"
	"log/slog"
)

// DispatchPendingTasksCommandHandler walks pending tasks oldest first and
// assigns each to its nearest courier. A task that still has no courier is
// left for the next run.
type DispatchPendingTasksCommandHandler struct {
	uowFactory UoWFactory
	finder     NearestCourierFinder
	assigner   TaskAssigner
	logger     *slog.Logger
}

func NewDispatchPendingTasksCommandHandler(
	uowFactory UoWFactory,
	finder NearestCourierFinder,
	assigner TaskAssigner,
	logger *slog.Logger,
) DispatchPendingTasksCommandHandler {
	return DispatchPendingTasksCommandHandler{
		uowFactory: uowFactory,
		finder:     finder,
		assigner:   assigner,
		logger:     logger.With("component", "dispatch-pending"),
	}
}

// Handle returns how many tasks were assigned.
func (h DispatchPendingTasksCommandHandler) Handle(ctx context.Context, command DispatchPendingTasksCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	// Reads only; each assignment opens its own locking transaction.
	taskRepo := h.uowFactory.Create().TaskRepository()

	ids, err := taskRepo.ListPendingIDs(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return assigned, err
		}

		t, err := taskRepo.Get(ctx, id)
		if err != nil {
			h.logger.Warn("failed to load pending task", "taskId", id.String(), "error", err)
			continue
		}

		if _, ok := assignNearest(ctx, h.finder, h.assigner, h.logger, t); ok {
			assigned++
		}
	}

	return assigned, nil
}
