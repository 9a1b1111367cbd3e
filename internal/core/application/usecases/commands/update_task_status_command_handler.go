package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateTaskStatusCommandHandler applies lifecycle transitions that are not
// assignment or acceptance.
//
// Permissions:
//   - a courier may move only tasks assigned to them
//   - an admin may only cancel
//   - customers cannot change status
type UpdateTaskStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewUpdateTaskStatusCommandHandler(uowFactory UoWFactory, publisher ports.Publisher, logger *slog.Logger) UpdateTaskStatusCommandHandler {
	return UpdateTaskStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update-task-status"),
		now:        time.Now,
	}
}

func (h UpdateTaskStatusCommandHandler) Handle(ctx context.Context, command UpdateTaskStatusCommand) (*task.Task, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()

	t, err := taskRepo.GetForUpdate(ctx, command.TaskID())
	if err != nil {
		return nil, err
	}

	if err = authorizeStatusChange(t, command.Actor(), command.Status()); err != nil {
		return nil, err
	}

	if err = t.Advance(command.Status(), h.now()); err != nil {
		return nil, err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.announce(ctx, t)
	return t, nil
}

func (h UpdateTaskStatusCommandHandler) announce(ctx context.Context, t *task.Task) {
	event := newTaskEvent(t)
	if err := h.publisher.Publish(ctx, ports.AdminChannel, ports.EventTaskStatus, event); err != nil {
		h.logger.Warn("failed to publish status", "taskId", t.ID().String(), "error", err)
	}
	if t.CourierID() == nil {
		return
	}
	if err := h.publisher.Publish(ctx, ports.CourierChannel(*t.CourierID()), ports.EventTaskStatus, event); err != nil {
		h.logger.Warn("failed to publish status to courier", "taskId", t.ID().String(), "error", err)
	}
}

func authorizeStatusChange(t *task.Task, actor ports.Principal, next task.Status) error {
	switch actor.Role {
	case kernel.RoleCourier:
		if !t.IsAssignedTo(actor.Subject) {
			return errs.NewForbiddenError(fmt.Sprintf("task %s is not assigned to you", t.ID()))
		}
		return nil
	case kernel.RoleAdmin:
		if next != task.Cancelled {
			return errs.NewForbiddenError("admins may only cancel tasks")
		}
		return nil
	default:
		return errs.NewForbiddenError(fmt.Sprintf("role %s cannot change task status", actor.Role))
	}
}
