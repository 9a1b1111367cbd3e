// Package ports defines the contracts between the dispatch core and its infrastructure.
// Repositories are bound to a unit of work; caches, notifiers and the real-time
// publisher are best-effort collaborators whose failures never roll back a transaction.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier. If another courier already owns the phone the
	// insert is skipped; callers re-read by phone to learn which row won.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists the mutable fields of an existing courier (name, active flag).
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByPhone retrieves a courier by normalized phone. Returns errs.ErrObjectNotFound when absent.
	GetByPhone(ctx context.Context, phone kernel.Phone) (*courier.Courier, error)

	// UpsertDevice registers a push endpoint. Re-registering the same
	// (courier, token) pair only refreshes the platform.
	UpsertDevice(ctx context.Context, device courier.Device) error

	// ListDevices returns every push endpoint of a courier, possibly none.
	ListDevices(ctx context.Context, courierID kernel.UUID) ([]courier.Device, error)
}
