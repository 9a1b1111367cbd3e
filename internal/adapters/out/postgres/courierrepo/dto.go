// Package courierrepo maps courier aggregates and their push devices to the
// couriers and courier_devices tables.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the row of the couriers table. Phone is unique, which is what
// makes concurrent first logins converge on a single courier.
type CourierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone     string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null;default:''"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// DeviceDTO is one push endpoint; (courier_id, push_token) is the primary key.
type DeviceDTO struct {
	CourierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PushToken string    `gorm:"type:varchar(512);primaryKey"`
	Platform  string    `gorm:"type:varchar(16);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DeviceDTO) TableName() string {
	return "courier_devices"
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:        c.ID().Bytes(),
		Phone:     c.Phone().String(),
		Name:      c.Name(),
		IsActive:  c.IsActive(),
		CreatedAt: c.CreatedAt(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return courier.RestoreCourier(id, kernel.Phone(dto.Phone), dto.Name, dto.IsActive, dto.CreatedAt)
}

func deviceToDomain(dto DeviceDTO) (courier.Device, error) {
	id, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return courier.Device{}, err
	}
	return courier.Device{CourierID: id, PushToken: dto.PushToken, Platform: courier.Platform(dto.Platform)}, nil
}
