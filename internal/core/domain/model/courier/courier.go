package courier

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsInactive is returned when a deactivated courier tries to work.
	ErrCourierIsInactive = errs.NewForbiddenError("courier is deactivated")
)

// Courier is the aggregate root for a delivery rider.
//
// Business rules:
//   - A courier is identified by a UUID and a unique normalized phone number
//   - Couriers are created active on their first successful code verification
//   - Deactivation is administrative and reversible; couriers are never deleted
//     so that tasks, wallets and location history stay addressable
//
// Example:
//
//	phone, _ := kernel.NewPhone("+998 90 123 45 67")
//	c, err := courier.NewCourier(kernel.NewUUID(), phone, "", time.Now())
//	if err != nil {
//	    return err
//	}
//	c.Deactivate()
type Courier struct {
	id        kernel.UUID
	phone     kernel.Phone
	name      string
	active    bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCourier creates an active courier. An empty name defaults to the phone number.
func NewCourier(id kernel.UUID, phone kernel.Phone, name string, createdAt time.Time) (*Courier, error) {
	c := &Courier{
		active:    true,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}
	c.setName(name)

	return c, nil
}

// RestoreCourier rebuilds a courier from persistence, preserving its activity flag.
func RestoreCourier(id kernel.UUID, phone kernel.Phone, name string, active bool, createdAt time.Time) (*Courier, error) {
	c, err := NewCourier(id, phone, name, createdAt)
	if err != nil {
		return nil, err
	}
	c.active = active
	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Phone() kernel.Phone {
	return c.phone
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) IsActive() bool {
	return c.active
}

func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// EnsureActive returns ErrCourierIsInactive for a deactivated courier.
func (c *Courier) EnsureActive() error {
	if !c.active {
		return ErrCourierIsInactive
	}
	return nil
}

func (c *Courier) Deactivate() {
	c.active = false
}

func (c *Courier) Activate() {
	c.active = true
}

func (c *Courier) Rename(name string) {
	c.setName(name)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setPhone(phone kernel.Phone) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Courier) setName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.phone.String()
	}
	c.name = name
}
