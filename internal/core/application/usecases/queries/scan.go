package queries

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"

	"github.com/google/uuid"
)

type scanner interface {
	Scan(dest ...any) error
}

// scanLastKnown reads (courier_id, lat, lng, accuracy, recorded_at).
func scanLastKnown(row scanner) (position.LastKnown, error) {
	var (
		id uuid.UUID
		p  position.LastKnown
	)
	if err := row.Scan(&id, &p.Lat, &p.Lng, &p.Accuracy, &p.RecordedAt); err != nil {
		return position.LastKnown{}, err
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return position.LastKnown{}, err
	}
	p.CourierID = courierID
	p.RecordedAt = p.RecordedAt.UTC()
	return p, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
