package commands

import (
	"context"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type UpsertAdminCommandHandler struct {
	uowFactory AdminUoWFactory
	hasher     ports.PasswordHasher
}

func NewUpsertAdminCommandHandler(uowFactory AdminUoWFactory, hasher ports.PasswordHasher) UpsertAdminCommandHandler {
	return UpsertAdminCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h UpsertAdminCommandHandler) Handle(ctx context.Context, command UpsertAdminCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	hash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return err
	}

	a, err := admin.NewAdmin(kernel.NewUUID(), command.Email(), command.Name(), hash)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AdminRepository().Upsert(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
