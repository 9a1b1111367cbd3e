package task

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// PaymentStatus tracks whether the ledger has settled a chargeable task.
type PaymentStatus string

const (
	Unpaid PaymentStatus = "unpaid"
	Paid   PaymentStatus = "paid"
	// Waived marks non-chargeable tasks (free credit or admin-created).
	Waived PaymentStatus = "waived"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case Unpaid, Paid, Waived:
		return PaymentStatus(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", s))
	}
}

// CreatorKind says who created a task.
type CreatorKind string

const (
	CreatedByCustomer CreatorKind = "customer"
	CreatedByAdmin    CreatorKind = "admin"
)

func ParseCreatorKind(s string) (CreatorKind, error) {
	switch CreatorKind(s) {
	case CreatedByCustomer, CreatedByAdmin:
		return CreatorKind(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("created_by_type", fmt.Errorf("%q is not customer or admin", s))
	}
}

// Creator identifies the principal that created a task. CustomerID is set only for customers.
type Creator struct {
	Kind       CreatorKind
	CustomerID *kernel.UUID
}

func NewCustomerCreator(customerID kernel.UUID) (Creator, error) {
	if err := customerID.Validate(); err != nil {
		return Creator{}, errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	return Creator{Kind: CreatedByCustomer, CustomerID: &customerID}, nil
}

func NewAdminCreator() Creator {
	return Creator{Kind: CreatedByAdmin}
}

func (c Creator) Validate() error {
	switch c.Kind {
	case CreatedByCustomer:
		if c.CustomerID == nil {
			return errs.NewValueIsRequiredError("customer_id")
		}
		return c.CustomerID.Validate()
	case CreatedByAdmin:
		return nil
	default:
		_, err := ParseCreatorKind(string(c.Kind))
		return err
	}
}
