package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateTaskStatusCommandIsNotConstructed = errors.New(
	"UpdateTaskStatusCommand must be created via NewUpdateTaskStatusCommand constructor",
)

// UpdateTaskStatusCommand moves a task along its lifecycle on behalf of actor.
type UpdateTaskStatusCommand struct {
	taskID kernel.UUID
	status task.Status
	actor  ports.Principal

	guard guard.ConstructorGuard
}

func NewUpdateTaskStatusCommand(taskID kernel.UUID, status string, actor ports.Principal) (UpdateTaskStatusCommand, error) {
	next, statusErr := task.ParseStatus(status)
	if err := errors.Join(taskID.Validate(), statusErr, actor.Subject.Validate()); err != nil {
		return UpdateTaskStatusCommand{}, err
	}
	return UpdateTaskStatusCommand{taskID: taskID, status: next, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateTaskStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTaskStatusCommandIsNotConstructed)
}

func (c UpdateTaskStatusCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c UpdateTaskStatusCommand) Status() task.Status {
	return c.status
}

func (c UpdateTaskStatusCommand) Actor() ports.Principal {
	return c.actor
}
