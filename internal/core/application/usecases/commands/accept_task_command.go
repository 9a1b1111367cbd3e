package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptTaskCommandIsNotConstructed = errors.New(
	"AcceptTaskCommand must be created via NewAcceptTaskCommand constructor",
)

// AcceptTaskCommand is a courier confirming the task assigned to them.
type AcceptTaskCommand struct {
	taskID    kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptTaskCommand(taskID, courierID kernel.UUID) (AcceptTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), courierID.Validate()); err != nil {
		return AcceptTaskCommand{}, err
	}
	return AcceptTaskCommand{taskID: taskID, courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptTaskCommand) Validate() error {
	return c.guard.Validate(ErrAcceptTaskCommandIsNotConstructed)
}

func (c AcceptTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c AcceptTaskCommand) CourierID() kernel.UUID {
	return c.courierID
}
