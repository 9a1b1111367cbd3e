package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/guard"
)

var ErrCreateTaskCommandIsNotConstructed = errors.New(
	"CreateTaskCommand must be created via NewCreateTaskCommand constructor",
)

// CreateTaskCommand represents a request to create a delivery task.
//
// Example:
//
//	pickup, _ := kernel.NewPlace("Amir Temur 1", pickupPoint)
//	dropoff, _ := kernel.NewPlace("Navoi 12", dropoffPoint)
//	creator, _ := task.NewCustomerCreator(customerID)
//	cmd, err := NewCreateTaskCommand(pickup, dropoff, creator)
type CreateTaskCommand struct {
	pickup  kernel.Place
	dropoff kernel.Place
	creator task.Creator

	guard guard.ConstructorGuard
}

func NewCreateTaskCommand(pickup, dropoff kernel.Place, creator task.Creator) (CreateTaskCommand, error) {
	if err := errors.Join(pickup.Validate(), dropoff.Validate(), creator.Validate()); err != nil {
		return CreateTaskCommand{}, err
	}
	return CreateTaskCommand{
		pickup:  pickup,
		dropoff: dropoff,
		creator: creator,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateTaskCommandIsNotConstructed)
}

func (c CreateTaskCommand) Pickup() kernel.Place {
	return c.pickup
}

func (c CreateTaskCommand) Dropoff() kernel.Place {
	return c.dropoff
}

func (c CreateTaskCommand) Creator() task.Creator {
	return c.creator
}
