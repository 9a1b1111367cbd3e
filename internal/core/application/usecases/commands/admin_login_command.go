package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdminLoginCommandIsNotConstructed = errors.New(
	"AdminLoginCommand must be created via NewAdminLoginCommand constructor",
)

type AdminLoginCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAdminLoginCommand(email, password string) (AdminLoginCommand, error) {
	normalized, emailErr := admin.NormalizeEmail(email)

	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}

	if err := errors.Join(emailErr, passwordErr); err != nil {
		return AdminLoginCommand{}, err
	}

	return AdminLoginCommand{
		email:    normalized,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdminLoginCommand) Validate() error {
	return c.guard.Validate(ErrAdminLoginCommandIsNotConstructed)
}

func (c AdminLoginCommand) Email() string {
	return c.email
}

func (c AdminLoginCommand) Password() string {
	return c.password
}
