package queries

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetLastKnownPositionQueryHandler answers from the cache and falls back to
// the report log on a miss, back-filling the cache. A courier that never
// reported yields nil without error.
type GetLastKnownPositionQueryHandler struct {
	reports ports.LocationRepository
	cache   ports.PositionCache
	logger  *slog.Logger
}

func NewGetLastKnownPositionQueryHandler(reports ports.LocationRepository, cache ports.PositionCache, logger *slog.Logger) GetLastKnownPositionQueryHandler {
	return GetLastKnownPositionQueryHandler{
		reports: reports,
		cache:   cache,
		logger:  logger.With("component", "last-known-position"),
	}
}

func (h GetLastKnownPositionQueryHandler) Handle(ctx context.Context, query GetLastKnownPositionQuery) (*position.LastKnown, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cached, err := h.cache.Get(ctx, query.CourierID())
	if err != nil {
		h.logger.Warn("position cache read failed", "courierId", query.CourierID().String(), "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	report, err := h.reports.Latest(ctx, query.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	latest := report.LastKnown()
	if _, err = h.cache.Put(ctx, latest); err != nil {
		h.logger.Warn("position cache back-fill failed", "courierId", query.CourierID().String(), "error", err)
	}
	return &latest, nil
}
