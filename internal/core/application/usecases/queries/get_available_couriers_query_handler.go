package queries

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler joins active couriers with the position
// cache. A cache outage degrades to couriers without positions.
type GetAvailableCouriersQueryHandler struct {
	db     *gorm.DB
	cache  ports.PositionCache
	logger *slog.Logger
}

func NewGetAvailableCouriersQueryHandler(db *gorm.DB, cache ports.PositionCache, logger *slog.Logger) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "available-couriers"),
	}
}

func (h GetAvailableCouriersQueryHandler) Handle(ctx context.Context, query GetAvailableCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, phone, name, is_active, created_at
		FROM couriers
		WHERE is_active = true
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]CourierView, 0)
	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var view CourierView
		var id uuid.UUID
		if err = rows.Scan(&id, &view.Phone, &view.Name, &view.IsActive, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		couriers = append(couriers, view)
		ids = append(ids, view.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return couriers, nil
	}

	cached, err := h.cache.GetMany(ctx, ids)
	if err != nil {
		h.logger.Warn("position cache unavailable", "error", err)
		return couriers, nil
	}
	for i := range couriers {
		if p, ok := cached[couriers[i].ID]; ok {
			couriers[i].LastLocation = &p
		}
	}
	return couriers, nil
}
