package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierActiveCommandIsNotConstructed = errors.New(
	"SetCourierActiveCommand must be created via NewSetCourierActiveCommand constructor",
)

// SetCourierActiveCommand activates or deactivates a courier account.
// Deactivated couriers keep their history but cannot log in, report or take tasks.
type SetCourierActiveCommand struct {
	courierID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

func NewSetCourierActiveCommand(courierID kernel.UUID, active bool) (SetCourierActiveCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierActiveCommand{}, err
	}
	return SetCourierActiveCommand{courierID: courierID, active: active, guard: guard.NewConstructorGuard()}, nil
}

func (c SetCourierActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActiveCommandIsNotConstructed)
}

func (c SetCourierActiveCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierActiveCommand) Active() bool {
	return c.active
}
