package task

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery task.
//
// State transitions:
//
//	Pending ──> Assigned ──> Accepted ──> PickedUp ──> Delivered
//	   │           │            │
//	   └───────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal.
type Status string

const (
	Pending   Status = "pending"
	Assigned  Status = "assigned"
	Accepted  Status = "accepted"
	PickedUp  Status = "picked_up"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {Accepted, Cancelled},
		Accepted:  {PickedUp, Cancelled},
		PickedUp:  {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// ParseStatus converts a wire or column value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresCourier reports whether a task in this status must carry an assigned courier.
func (s Status) RequiresCourier() bool {
	switch s {
	case Assigned, Accepted, PickedUp, Delivered:
		return true
	case Pending, Cancelled:
		return false
	}
	return false
}

// IsAcceptedOrLater is true once the courier has confirmed the task.
func (s Status) IsAcceptedOrLater() bool {
	return s == Accepted || s == PickedUp || s == Delivered
}
