package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyCodeCommandIsNotConstructed = errors.New(
	"VerifyCodeCommand must be created via NewVerifyCodeCommand constructor",
)

// VerifyCodeCommand exchanges a one-time code for a bearer token.
// Role is courier (default) or customer.
type VerifyCodeCommand struct {
	phone kernel.Phone
	code  string
	role  kernel.Role

	guard guard.ConstructorGuard
}

func NewVerifyCodeCommand(phone, code, role string) (VerifyCodeCommand, error) {
	c := VerifyCodeCommand{guard: guard.NewConstructorGuard()}

	var phoneErr error
	c.phone, phoneErr = kernel.NewPhone(phone)

	if err := errors.Join(phoneErr, c.setCode(code), c.setRole(role)); err != nil {
		return VerifyCodeCommand{}, err
	}
	return c, nil
}

func (c VerifyCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCodeCommandIsNotConstructed)
}

func (c VerifyCodeCommand) Phone() kernel.Phone {
	return c.phone
}

func (c VerifyCodeCommand) Code() string {
	return c.code
}

func (c VerifyCodeCommand) Role() kernel.Role {
	return c.role
}

func (c *VerifyCodeCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *VerifyCodeCommand) setRole(role string) error {
	if role == "" {
		c.role = kernel.RoleCourier
		return nil
	}
	r, err := kernel.ParseRole(role)
	if err != nil {
		return err
	}
	if r == kernel.RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("admins log in with e-mail and password"))
	}
	c.role = r
	return nil
}
