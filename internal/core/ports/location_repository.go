package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
)

// LocationRepository is the authoritative, append-only store of location reports.
type LocationRepository interface {
	Append(ctx context.Context, report position.Report) error

	// Latest returns the report with the greatest recorded_at for a courier,
	// or errs.ErrObjectNotFound when the courier never reported.
	Latest(ctx context.Context, courierID kernel.UUID) (position.Report, error)
}
