package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignTaskCommandIsNotConstructed = errors.New(
	"AssignTaskCommand must be created via NewAssignTaskCommand constructor",
)

// AssignTaskCommand gives a pending task to a specific courier.
//
// Example:
//
//	cmd, err := NewAssignTaskCommand(taskID, courierID)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // someone else got it first
//	case err == nil && !res.Changed:
//	    // it was already ours
//	}
type AssignTaskCommand struct {
	taskID    kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignTaskCommand(taskID, courierID kernel.UUID) (AssignTaskCommand, error) {
	var taskErr, courierErr error
	if err := taskID.Validate(); err != nil {
		taskErr = errs.NewValueIsRequiredErrorWithCause("taskId", err)
	}
	if err := courierID.Validate(); err != nil {
		courierErr = errs.NewValueIsRequiredErrorWithCause("riderId", err)
	}
	if err := errors.Join(taskErr, courierErr); err != nil {
		return AssignTaskCommand{}, err
	}

	return AssignTaskCommand{taskID: taskID, courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignTaskCommandIsNotConstructed)
}

func (c AssignTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c AssignTaskCommand) CourierID() kernel.UUID {
	return c.courierID
}
