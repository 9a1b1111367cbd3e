package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler reads couriers and, in a second statement, the
// freshest location report of each of them.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

func (h GetAllCouriersQueryHandler) Handle(ctx context.Context, query GetAllCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			phone,
			name,
			is_active,
			created_at
		FROM couriers
		ORDER BY created_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]CourierView, 0)
	ids := make([]string, 0)

	for rows.Next() {
		var view CourierView
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Phone, &view.Name, &view.IsActive, &view.CreatedAt); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = courierID
		couriers = append(couriers, view)
		ids = append(ids, courierID.String())
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return couriers, nil
	}

	latest, err := h.latestReports(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range couriers {
		if p, ok := latest[couriers[i].ID]; ok {
			couriers[i].LastLocation = &p
		}
	}

	return couriers, nil
}

func (h GetAllCouriersQueryHandler) latestReports(ctx context.Context, ids []string) (map[kernel.UUID]position.LastKnown, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (courier_id)
			courier_id,
			lat,
			lng,
			accuracy,
			recorded_at
		FROM location_reports
		WHERE courier_id = ANY(CAST(? AS uuid[]))
		ORDER BY courier_id, recorded_at DESC
	`, pq.Array(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[kernel.UUID]position.LastKnown, len(ids))
	for rows.Next() {
		p, scanErr := scanLastKnown(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		latest[p.CourierID] = p
	}
	return latest, rows.Err()
}
