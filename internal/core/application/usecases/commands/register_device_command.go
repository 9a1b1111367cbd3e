package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDeviceCommandIsNotConstructed = errors.New(
	"RegisterDeviceCommand must be created via NewRegisterDeviceCommand constructor",
)

// RegisterDeviceCommand attaches a push token to a courier.
type RegisterDeviceCommand struct {
	device courier.Device

	guard guard.ConstructorGuard
}

func NewRegisterDeviceCommand(courierID kernel.UUID, pushToken, platform string) (RegisterDeviceCommand, error) {
	device, err := courier.NewDevice(courierID, pushToken, platform)
	if err != nil {
		return RegisterDeviceCommand{}, err
	}
	return RegisterDeviceCommand{device: device, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterDeviceCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeviceCommandIsNotConstructed)
}

func (c RegisterDeviceCommand) Device() courier.Device {
	return c.device
}
