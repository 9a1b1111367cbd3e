// Package taskrepo maps task aggregates to the tasks table.
package taskrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// TaskDTO is the row of the tasks table. Pickup and dropoff are embedded
// columns; status is indexed for the pending scan and the console listing.
type TaskDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Pickup        PlaceDTO   `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff       PlaceDTO   `gorm:"embedded;embeddedPrefix:dropoff_"`
	CreatedByType string     `gorm:"type:varchar(16);not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(16);not null;index"`
	IsChargeable  bool       `gorm:"not null"`
	Price         int64      `gorm:"not null"`
	PaymentStatus string     `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

func (TaskDTO) TableName() string {
	return "tasks"
}

type PlaceDTO struct {
	Address string  `gorm:"type:text;not null"`
	Lat     float64 `gorm:"not null"`
	Lng     float64 `gorm:"not null"`
}

func placeFromDomain(p kernel.Place) PlaceDTO {
	return PlaceDTO{Address: p.Address(), Lat: p.Point().Lat(), Lng: p.Point().Lng()}
}

func (p PlaceDTO) toDomain() (kernel.Place, error) {
	point, err := kernel.NewGeoPoint(p.Lat, p.Lng)
	if err != nil {
		return kernel.Place{}, err
	}
	return kernel.NewPlace(p.Address, point)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func fromDomain(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:            t.ID().Bytes(),
		Pickup:        placeFromDomain(t.Pickup()),
		Dropoff:       placeFromDomain(t.Dropoff()),
		CreatedByType: string(t.Creator().Kind),
		CustomerID:    optionalID(t.Creator().CustomerID),
		CourierID:     optionalID(t.CourierID()),
		Status:        string(t.Status()),
		IsChargeable:  t.IsChargeable(),
		Price:         t.Price(),
		PaymentStatus: string(t.PaymentStatus()),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := dto.Pickup.toDomain()
	if err != nil {
		return nil, err
	}
	dropoff, err := dto.Dropoff.toDomain()
	if err != nil {
		return nil, err
	}

	kind, err := task.ParseCreatorKind(dto.CreatedByType)
	if err != nil {
		return nil, err
	}
	creator := task.NewAdminCreator()
	if kind == task.CreatedByCustomer {
		customerID, idErr := optionalKernelID(dto.CustomerID)
		if idErr != nil {
			return nil, idErr
		}
		if customerID == nil {
			return nil, errs.NewValueIsRequiredError("customer_id")
		}
		if creator, err = task.NewCustomerCreator(*customerID); err != nil {
			return nil, err
		}
	}

	courierID, err := optionalKernelID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := task.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return task.RestoreTask(
		id,
		pickup,
		dropoff,
		creator,
		courierID,
		task.Status(dto.Status),
		dto.IsChargeable,
		dto.Price,
		paymentStatus,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
