package commands

import (
	"context"
	"errors"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrInvalidCredentials is the cause of every failed admin login, whatever went wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminLoginCommandHandler checks an e-mail/password pair and issues an admin token.
// Unknown e-mails are compared against a dummy hash so both failure paths cost one bcrypt comparison.
type AdminLoginCommandHandler struct {
	uowFactory AdminUoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer

	dummyOnce *sync.Once
	dummyHash *string
}

func NewAdminLoginCommandHandler(
	uowFactory AdminUoWFactory,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
) AdminLoginCommandHandler {
	return AdminLoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
		dummyOnce:  &sync.Once{},
		dummyHash:  new(string),
	}
}

func (h AdminLoginCommandHandler) Handle(ctx context.Context, command AdminLoginCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	found, err := uow.AdminRepository().GetByEmail(ctx, command.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		_ = h.hasher.Compare(h.dummy(), command.Password())
		return "", invalidCredentials()
	}
	if err != nil {
		return "", err
	}

	if err = h.hasher.Compare(found.PasswordHash, command.Password()); err != nil {
		return "", invalidCredentials()
	}

	return h.issuer.Issue(found.ID, kernel.RoleAdmin)
}

func (h AdminLoginCommandHandler) dummy() string {
	h.dummyOnce.Do(func() {
		if hash, err := h.hasher.Hash("dispatch-console-placeholder"); err == nil {
			*h.dummyHash = hash
		}
	})
	return *h.dummyHash
}

func invalidCredentials() error {
	return &errs.KindError{Kind: errs.ErrUnauthorized, Reason: "invalid credentials", Cause: ErrInvalidCredentials}
}
