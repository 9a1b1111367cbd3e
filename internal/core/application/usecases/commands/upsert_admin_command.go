package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpsertAdminCommandIsNotConstructed = errors.New(
	"UpsertAdminCommand must be created via NewUpsertAdminCommand constructor",
)

// UpsertAdminCommand creates or resets a console operator. Used by the seed tool.
type UpsertAdminCommand struct {
	email    string
	name     string
	password string

	guard guard.ConstructorGuard
}

func NewUpsertAdminCommand(email, name, password string) (UpsertAdminCommand, error) {
	normalized, emailErr := admin.NormalizeEmail(email)

	var passwordErr error
	// bcrypt ignores bytes past 72.
	if len(password) < 8 || len(password) > 72 {
		passwordErr = errs.NewValueIsOutOfRangeError("password length", len(password), 8, 72)
	}

	if err := errors.Join(emailErr, passwordErr); err != nil {
		return UpsertAdminCommand{}, err
	}

	return UpsertAdminCommand{
		email:    normalized,
		name:     strings.TrimSpace(name),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertAdminCommand) Validate() error {
	return c.guard.Validate(ErrUpsertAdminCommandIsNotConstructed)
}

func (c UpsertAdminCommand) Email() string {
	return c.email
}

func (c UpsertAdminCommand) Name() string {
	return c.name
}

func (c UpsertAdminCommand) Password() string {
	return c.password
}
