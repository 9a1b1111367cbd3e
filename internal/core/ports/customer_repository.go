package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
// Free-credit changes are conditional updates executed by the database,
// so two concurrent task creations can never spend the same credit.
type CustomerRepository interface {
	// Add behaves like CourierRepository.Add: a duplicate phone is skipped silently.
	Add(ctx context.Context, customer *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	GetByPhone(ctx context.Context, phone kernel.Phone) (*customer.Customer, error)

	// GrantMonthlyCredit adds one credit if the last grant happened before monthStart.
	// Returns true when this call performed the grant.
	GrantMonthlyCredit(ctx context.Context, id kernel.UUID, monthStart time.Time) (bool, error)

	// ConsumeFreeCredit decrements free credits if at least one is left.
	// Returns true when a credit was consumed.
	ConsumeFreeCredit(ctx context.Context, id kernel.UUID) (bool, error)
}
