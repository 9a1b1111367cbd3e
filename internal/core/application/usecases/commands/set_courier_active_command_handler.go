package commands

import (
	"context"
)

type SetCourierActiveCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierActiveCommandHandler(uowFactory CourierUoWFactory) SetCourierActiveCommandHandler {
	return SetCourierActiveCommandHandler{uowFactory: uowFactory}
}

func (h SetCourierActiveCommandHandler) Handle(ctx context.Context, command SetCourierActiveCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	c, err := repo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if c.IsActive() == command.Active() {
		return nil
	}

	if command.Active() {
		c.Activate()
	} else {
		c.Deactivate()
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
