package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

type RegisterCustomerCommand struct {
	name  string
	phone kernel.Phone

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(name, phone string) (RegisterCustomerCommand, error) {
	p, phoneErr := kernel.NewPhone(phone)

	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(nameErr, phoneErr); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return RegisterCustomerCommand{name: name, phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) Name() string {
	return c.name
}

func (c RegisterCustomerCommand) Phone() kernel.Phone {
	return c.phone
}
