package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRequestCodeCommandIsNotConstructed = errors.New(
	"RequestCodeCommand must be created via NewRequestCodeCommand constructor",
)

// RequestCodeCommand asks for a one-time login code to be sent to a phone.
type RequestCodeCommand struct {
	phone kernel.Phone

	guard guard.ConstructorGuard
}

func NewRequestCodeCommand(phone string) (RequestCodeCommand, error) {
	p, err := kernel.NewPhone(phone)
	if err != nil {
		return RequestCodeCommand{}, err
	}
	return RequestCodeCommand{phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestCodeCommand) Validate() error {
	return c.guard.Validate(ErrRequestCodeCommandIsNotConstructed)
}

func (c RequestCodeCommand) Phone() kernel.Phone {
	return c.phone
}
