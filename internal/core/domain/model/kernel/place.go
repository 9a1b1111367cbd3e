package kernel

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError("place must be created via NewPlace")

// Place is a human-readable address pinned to a coordinate.
type Place struct { //nolint:recvcheck //using for validation
	address string
	point   GeoPoint
	guard   guard.ConstructorGuard
}

func NewPlace(address string, point GeoPoint) (Place, error) {
	p := Place{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setAddress(address), p.setPoint(point)); err != nil {
		return Place{}, err
	}

	return p, nil
}

func (p Place) Address() string {
	return p.address
}

func (p Place) Point() GeoPoint {
	return p.point
}

func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

func (p *Place) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	p.address = address
	return nil
}

func (p *Place) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.point = point
	return nil
}
