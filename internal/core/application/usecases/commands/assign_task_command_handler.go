package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
)

// AssignTaskResult reports the outcome of an assignment.
// Changed is false when the courier already held the task.
type AssignTaskResult struct {
	Task    *task.Task
	Changed bool
}

// AssignTaskCommandHandler assigns a task under its row lock.
//
// Two concurrent assignments of one task to different couriers are serialized
// by the lock: the second one sees the first courier and fails with Conflict.
// After commit the courier is told over its real-time channel and by push.
type AssignTaskCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.Publisher
	notifier   ports.PushNotifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewAssignTaskCommandHandler(
	uowFactory UoWFactory,
	publisher ports.Publisher,
	notifier ports.PushNotifier,
	logger *slog.Logger,
) AssignTaskCommandHandler {
	return AssignTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "assign-task"),
		now:        time.Now,
	}
}

func (h AssignTaskCommandHandler) Handle(ctx context.Context, command AssignTaskCommand) (AssignTaskResult, error) {
	if err := command.Validate(); err != nil {
		return AssignTaskResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignTaskResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()
	courierRepo := uow.CourierRepository()

	t, err := taskRepo.GetForUpdate(ctx, command.TaskID())
	if err != nil {
		return AssignTaskResult{}, err
	}

	c, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return AssignTaskResult{}, err
	}
	if err = c.EnsureActive(); err != nil {
		return AssignTaskResult{}, err
	}

	changed, err := t.Assign(c.ID(), h.now())
	if err != nil {
		return AssignTaskResult{}, err
	}
	if !changed {
		return AssignTaskResult{Task: t}, nil
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return AssignTaskResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignTaskResult{}, err
	}

	h.announce(ctx, t, c)
	return AssignTaskResult{Task: t, Changed: true}, nil
}

func (h AssignTaskCommandHandler) announce(ctx context.Context, t *task.Task, c *courier.Courier) {
	log := h.logger.With("taskId", t.ID().String(), "courierId", c.ID().String())

	if err := h.publisher.Publish(ctx, ports.CourierChannel(c.ID()), ports.EventTaskAssign, newTaskEvent(t)); err != nil {
		log.Warn("failed to publish assignment", "error", err)
	}

	// Outside the committed transaction; the repository runs on the plain connection.
	devices, err := h.uowFactory.Create().CourierRepository().ListDevices(ctx, c.ID())
	if err != nil {
		log.Warn("failed to load devices", "error", err)
		return
	}
	if len(devices) == 0 {
		return
	}

	n := ports.PushNotification{
		Title: "New task",
		Body:  fmt.Sprintf("Pickup: %s", t.Pickup().Address()),
		Data:  map[string]string{"type": "task:assign", "taskId": t.ID().String()},
	}
	if err = h.notifier.Notify(ctx, c.ID(), pushTokens(devices), n); err != nil {
		log.Warn("failed to push assignment", "error", err)
	}
}
