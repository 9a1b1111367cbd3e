package commands

import (
	"context"
)

type RegisterDeviceCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewRegisterDeviceCommandHandler(uowFactory CourierUoWFactory) RegisterDeviceCommandHandler {
	return RegisterDeviceCommandHandler{uowFactory: uowFactory}
}

// Handle upserts the device. Registering the same token twice is not an error.
func (h RegisterDeviceCommandHandler) Handle(ctx context.Context, command RegisterDeviceCommand) error {
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
	device := command.Device()

	if _, err := repo.Get(ctx, device.CourierID); err != nil {
		return err
	}

	if err := repo.UpsertDevice(ctx, device); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
