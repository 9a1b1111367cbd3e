package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindNearestCourierQueryHandler loads the freshest report of every active
// courier and lets services.CourierMatcher pick the winner. Reports older
// than maxReportAge are ignored; zero disables the cut-off.
type FindNearestCourierQueryHandler struct {
	db           *gorm.DB
	matcher      services.CourierMatcher
	maxReportAge time.Duration
	now          func() time.Time
}

func NewFindNearestCourierQueryHandler(db *gorm.DB, matcher services.CourierMatcher, maxReportAge time.Duration) FindNearestCourierQueryHandler {
	return FindNearestCourierQueryHandler{
		db:           db,
		matcher:      matcher,
		maxReportAge: maxReportAge,
		now:          time.Now,
	}
}

// Handle returns nil when no courier qualifies.
func (h FindNearestCourierQueryHandler) Handle(ctx context.Context, query FindNearestCourierQuery) (*kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.candidates(ctx)
	if err != nil {
		return nil, err
	}

	courierID, err := h.matcher.Match(query.Pickup(), candidates)
	if errors.Is(err, services.ErrCourierNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &courierID, nil
}

// FindNearest lets task creation and the pending-task job use the handler directly.
func (h FindNearestCourierQueryHandler) FindNearest(ctx context.Context, pickup kernel.GeoPoint) (*kernel.UUID, error) {
	query, err := NewFindNearestCourierQuery(pickup.Lat(), pickup.Lng())
	if err != nil {
		return nil, err
	}
	return h.Handle(ctx, query)
}

func (h FindNearestCourierQueryHandler) candidates(ctx context.Context) ([]position.Candidate, error) {
	// The epoch stands in for "no cut-off" so the statement stays the same.
	since := time.Unix(0, 0).UTC()
	if h.maxReportAge > 0 {
		since = h.now().Add(-h.maxReportAge).UTC()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (r.courier_id)
			r.courier_id,
			r.lat,
			r.lng
		FROM location_reports r
		JOIN couriers c ON c.id = r.courier_id
		WHERE c.is_active = true
		  AND r.recorded_at >= ?
		ORDER BY r.courier_id, r.recorded_at DESC
	`, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]position.Candidate, 0)
	for rows.Next() {
		var (
			id       uuid.UUID
			lat, lng float64
		)
		if err = rows.Scan(&id, &lat, &lng); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		point, pointErr := kernel.NewGeoPoint(lat, lng)
		if pointErr != nil {
			return nil, pointErr
		}
		candidates = append(candidates, position.Candidate{CourierID: courierID, Point: point})
	}
	return candidates, rows.Err()
}
