// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read with raw SQL and return read models rather than aggregates;
// none of them takes locks.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const defaultCourierListLimit = 200

var (
	ErrGetAllCouriersQueryIsNotConstructed = errors.New(
		"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
	)
)

// GetAllCouriersQuery lists couriers for the dispatch console, newest first,
// with the last position each of them reported.
//
// Example:
//
//	query, _ := NewGetAllCouriersQuery(0)
//	couriers, err := handler.Handle(ctx, query)
//	for _, c := range couriers {
//	    if c.LastLocation != nil {
//	        fmt.Printf("%s at (%.5f, %.5f)\n", c.Name, c.LastLocation.Lat, c.LastLocation.Lng)
//	    }
//	}
type GetAllCouriersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates the query. A zero limit means the default of 200.
func NewGetAllCouriersQuery(limit int) (GetAllCouriersQuery, error) {
	if limit < 0 {
		return GetAllCouriersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}
	if limit == 0 {
		limit = defaultCourierListLimit
	}
	return GetAllCouriersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

func (q GetAllCouriersQuery) Limit() int {
	return q.limit
}

// CourierView is the console read model of a courier.
type CourierView struct {
	ID           kernel.UUID
	Phone        string
	Name         string
	IsActive     bool
	CreatedAt    time.Time
	LastLocation *position.LastKnown
}
