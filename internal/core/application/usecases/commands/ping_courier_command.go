package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPingCourierCommandIsNotConstructed = errors.New(
	"PingCourierCommand must be created via NewPingCourierCommand constructor",
)

const defaultPingMessage = "Please check for available tasks"

// PingCourierCommand nudges a courier from the dispatch console.
type PingCourierCommand struct {
	courierID kernel.UUID
	message   string

	guard guard.ConstructorGuard
}

func NewPingCourierCommand(courierID kernel.UUID, message string) (PingCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return PingCourierCommand{}, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = defaultPingMessage
	}

	return PingCourierCommand{courierID: courierID, message: message, guard: guard.NewConstructorGuard()}, nil
}

func (c PingCourierCommand) Validate() error {
	return c.guard.Validate(ErrPingCourierCommandIsNotConstructed)
}

func (c PingCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c PingCourierCommand) Message() string {
	return c.message
}
