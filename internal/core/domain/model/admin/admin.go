// Package admin provides the dispatch-console operator account.
package admin

import (
	"errors"
	"net/mail"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Admin is an operator who logs in with e-mail and password.
// PasswordHash is a bcrypt digest; the plain password never reaches the domain.
type Admin struct {
	ID           kernel.UUID
	Email        string
	Name         string
	PasswordHash string
}

func NewAdmin(id kernel.UUID, email, name, passwordHash string) (*Admin, error) {
	normalized, emailErr := NormalizeEmail(email)

	var hashErr error
	if passwordHash == "" {
		hashErr = errs.NewValueIsRequiredError("passwordHash")
	}

	if err := errors.Join(id.Validate(), emailErr, hashErr); err != nil {
		return nil, err
	}

	return &Admin{
		ID:           id,
		Email:        normalized,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
	}, nil
}

// NormalizeEmail lower-cases and validates an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return email, nil
}
