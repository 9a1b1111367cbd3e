package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrFindNearestCourierQueryIsNotConstructed = errors.New(
	"FindNearestCourierQuery must be created via NewFindNearestCourierQuery constructor",
)

// FindNearestCourierQuery asks for the active courier closest to a pickup point.
type FindNearestCourierQuery struct {
	pickup kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewFindNearestCourierQuery(lat, lng float64) (FindNearestCourierQuery, error) {
	pickup, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return FindNearestCourierQuery{}, err
	}
	return FindNearestCourierQuery{pickup: pickup, guard: guard.NewConstructorGuard()}, nil
}

func (q FindNearestCourierQuery) Validate() error {
	return q.guard.Validate(ErrFindNearestCourierQueryIsNotConstructed)
}

func (q FindNearestCourierQuery) Pickup() kernel.GeoPoint {
	return q.pickup
}
