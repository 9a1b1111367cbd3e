package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// CreateTaskResult is the task as stored plus the outcome of the first assignment attempt.
type CreateTaskResult struct {
	Task     *task.Task
	Assigned bool
}

// CreateTaskCommandHandler creates tasks and immediately tries to assign them.
//
// Customer tasks first receive the lazy monthly credit grant, then try to
// consume one free credit. Both are conditional updates, so concurrent
// creations never overspend. A consumed credit makes the task free; otherwise
// it is chargeable at the configured price. Admin tasks are always free.
//
// The task row and the credit consumption commit together. Assignment runs
// afterwards in its own transaction; when no courier qualifies, or the
// attempt fails, the task stays pending for the dispatch job.
type CreateTaskCommandHandler struct {
	uowFactory UoWFactory
	finder     NearestCourierFinder
	assigner   TaskAssigner
	price      int64
	logger     *slog.Logger
	now        func() time.Time
}

func NewCreateTaskCommandHandler(
	uowFactory UoWFactory,
	finder NearestCourierFinder,
	assigner TaskAssigner,
	price int64,
	logger *slog.Logger,
) CreateTaskCommandHandler {
	return CreateTaskCommandHandler{
		uowFactory: uowFactory,
		finder:     finder,
		assigner:   assigner,
		price:      price,
		logger:     logger.With("component", "create-task"),
		now:        time.Now,
	}
}

func (h CreateTaskCommandHandler) Handle(ctx context.Context, command CreateTaskCommand) (CreateTaskResult, error) {
	if err := command.Validate(); err != nil {
		return CreateTaskResult{}, err
	}

	created, err := h.create(ctx, command)
	if err != nil {
		return CreateTaskResult{}, err
	}

	var result CreateTaskResult
	result.Task, result.Assigned = assignNearest(ctx, h.finder, h.assigner, h.logger, created)
	return result, nil
}

func (h CreateTaskCommandHandler) create(ctx context.Context, command CreateTaskCommand) (*task.Task, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now()
	chargeable := false

	if creator := command.Creator(); creator.Kind == task.CreatedByCustomer {
		customerRepo := uow.CustomerRepository()

		if _, err := customerRepo.Get(ctx, *creator.CustomerID); err != nil {
			return nil, err
		}
		if _, err := customerRepo.GrantMonthlyCredit(ctx, *creator.CustomerID, customer.MonthStart(now)); err != nil {
			return nil, err
		}
		consumed, err := customerRepo.ConsumeFreeCredit(ctx, *creator.CustomerID)
		if err != nil {
			return nil, err
		}
		chargeable = !consumed
	}

	t, err := task.NewTask(kernel.NewUUID(), command.Pickup(), command.Dropoff(), command.Creator(), chargeable, h.price, now)
	if err != nil {
		return nil, err
	}

	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// assignNearest is shared with the pending-task dispatcher.
func assignNearest(
	ctx context.Context,
	finder NearestCourierFinder,
	assigner TaskAssigner,
	logger *slog.Logger,
	t *task.Task,
) (*task.Task, bool) {
	log := logger.With("taskId", t.ID().String())

	courierID, err := finder.FindNearest(ctx, t.Pickup().Point())
	if err != nil {
		log.Warn("nearest courier lookup failed", "error", err)
		return t, false
	}
	if courierID == nil {
		log.Info("no courier available, task stays pending")
		return t, false
	}

	cmd, err := NewAssignTaskCommand(t.ID(), *courierID)
	if err != nil {
		log.Error("failed to build assignment", "error", err)
		return t, false
	}

	res, err := assigner.Handle(ctx, cmd)
	if err != nil {
		log.Warn("assignment failed", "courierId", courierID.String(), "error", err)
		return t, false
	}
	return res.Task, true
}
