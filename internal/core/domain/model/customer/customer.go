// Package customer provides the Customer aggregate and its free-credit allowance.
package customer

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer orders deliveries. Each customer receives a sign-up allowance of
// free credits plus one credit per calendar month; a free credit makes a task
// non-chargeable.
//
// Credit arithmetic is performed by the repository with conditional updates so
// concurrent task creation can never drive the counter below zero. The aggregate
// only carries the values it was loaded with.
type Customer struct {
	id               kernel.UUID
	phone            kernel.Phone
	name             string
	freeCredits      int
	lastMonthlyGrant *time.Time
	createdAt        time.Time
	guard            guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, phone kernel.Phone, name string, signupCredits int, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		name:      strings.TrimSpace(name),
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var phoneErr, creditsErr error
	if phone == "" {
		phoneErr = errs.NewValueIsRequiredError("phone")
	}
	if signupCredits < 0 {
		creditsErr = errs.NewValueIsOutOfRangeError("signupCredits", signupCredits, 0, "unbounded")
	}
	if err := errors.Join(id.Validate(), phoneErr, creditsErr); err != nil {
		return nil, err
	}

	c.id = id
	c.phone = phone
	c.freeCredits = signupCredits
	// The sign-up month counts as granted.
	granted := MonthStart(c.createdAt)
	c.lastMonthlyGrant = &granted
	return c, nil
}

func RestoreCustomer(
	id kernel.UUID,
	phone kernel.Phone,
	name string,
	freeCredits int,
	lastMonthlyGrant *time.Time,
	createdAt time.Time,
) (*Customer, error) {
	c, err := NewCustomer(id, phone, name, freeCredits, createdAt)
	if err != nil {
		return nil, err
	}
	c.lastMonthlyGrant = lastMonthlyGrant
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Phone() kernel.Phone {
	return c.phone
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) FreeCredits() int {
	return c.freeCredits
}

func (c *Customer) LastMonthlyGrant() *time.Time {
	return c.lastMonthlyGrant
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// MonthStart returns 00:00 UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
