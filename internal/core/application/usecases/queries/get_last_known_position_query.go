package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetLastKnownPositionQueryIsNotConstructed = errors.New(
	"GetLastKnownPositionQuery must be created via NewGetLastKnownPositionQuery constructor",
)

type GetLastKnownPositionQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLastKnownPositionQuery(courierID kernel.UUID) (GetLastKnownPositionQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetLastKnownPositionQuery{}, err
	}
	return GetLastKnownPositionQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLastKnownPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetLastKnownPositionQueryIsNotConstructed)
}

func (q GetLastKnownPositionQuery) CourierID() kernel.UUID {
	return q.courierID
}
