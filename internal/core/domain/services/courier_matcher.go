package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
)

// ErrCourierNotFound is returned when no candidate is available for a pickup point.
// It is a valid outcome for task creation: the task simply stays pending.
var ErrCourierNotFound = errors.New("courier not found")

// CourierMatcher selects the courier nearest to a pickup point.
//
// Business rules:
//   - distance is the squared planar distance on raw degrees
//   - the smallest distance wins
//   - ties go to the lowest courier id so results are reproducible
//
// Example usage:
//
//	matcher := NewCourierMatcher()
//	courierID, err := matcher.Match(pickup, candidates)
//	if errors.Is(err, ErrCourierNotFound) {
//	    // leave the task pending
//	}
type CourierMatcher struct{}

func NewCourierMatcher() CourierMatcher {
	return CourierMatcher{}
}

// Match returns the id of the winning candidate. Candidates must already be
// filtered to one freshest report per active courier.
func (m CourierMatcher) Match(pickup kernel.GeoPoint, candidates []position.Candidate) (kernel.UUID, error) {
	if err := pickup.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var (
		best     *position.Candidate
		bestDist = math.MaxFloat64
	)

	for i := range candidates {
		c := &candidates[i]
		if err := c.CourierID.Validate(); err != nil {
			return kernel.UUID{}, err
		}
		if err := c.Point.Validate(); err != nil {
			return kernel.UUID{}, err
		}

		d := pickup.SquaredDistanceTo(c.Point)
		if d < bestDist || (d == bestDist && best != nil && c.CourierID.Compare(best.CourierID) < 0) {
			bestDist = d
			best = c
		}
	}

	if best == nil {
		return kernel.UUID{}, ErrCourierNotFound
	}
	return best.CourierID, nil
}
