package task

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task was not created through NewTask or RestoreTask.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

	// ErrIllegalTransition is the cause attached to conflicts raised by the state machine.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrAlreadyAccepted is the cause attached when a task is accepted twice.
	ErrAlreadyAccepted = errors.New("task already accepted")
	// ErrAssignedToAnotherCourier is the cause attached to assignment races.
	ErrAssignedToAnotherCourier = errors.New("task assigned to another courier")
)

// Task is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - the assigned courier is set whenever the status requires one
//   - price and chargeable are fixed at creation
//   - status only moves along the edges declared in status.go
//
// Task is not safe for concurrent use. Callers load it under a row lock
// inside a unit of work so transitions for one task are linearized.
//
// Example:
//
//	t, _ := task.NewTask(kernel.NewUUID(), pickup, dropoff, task.NewAdminCreator(), false, 10000, time.Now())
//	changed, err := t.Assign(courierID, time.Now())
//	if err != nil {
//	    return err // Conflict when already held by someone else
//	}
type Task struct {
	id            kernel.UUID
	pickup        kernel.Place
	dropoff       kernel.Place
	creator       Creator
	courierID     *kernel.UUID
	status        Status
	chargeable    bool
	price         int64
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewTask creates a pending task. Non-chargeable tasks start with payment waived.
func NewTask(
	id kernel.UUID,
	pickup, dropoff kernel.Place,
	creator Creator,
	chargeable bool,
	price int64,
	now time.Time,
) (*Task, error) {
	t := &Task{
		status:        Pending,
		chargeable:    chargeable,
		paymentStatus: Waived,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}
	if chargeable {
		t.paymentStatus = Unpaid
	}

	var priceErr error
	if price < 0 {
		priceErr = errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		creator.Validate(),
		priceErr,
	); err != nil {
		return nil, err
	}

	t.id = id
	t.pickup = pickup
	t.dropoff = dropoff
	t.creator = creator
	t.price = price
	return t, nil
}

// RestoreTask rebuilds a task from persistence and checks the courier invariant.
func RestoreTask(
	id kernel.UUID,
	pickup, dropoff kernel.Place,
	creator Creator,
	courierID *kernel.UUID,
	status Status,
	chargeable bool,
	price int64,
	paymentStatus PaymentStatus,
	createdAt, updatedAt time.Time,
) (*Task, error) {
	t, err := NewTask(id, pickup, dropoff, creator, chargeable, price, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status.RequiresCourier() && courierID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("courier_id", fmt.Errorf("status %s requires a courier", status))
	}

	t.courierID = courierID
	t.status = status
	t.paymentStatus = paymentStatus
	t.updatedAt = updatedAt.UTC()
	return t, nil
}

func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

func (t *Task) ID() kernel.UUID {
	return t.id
}

func (t *Task) Pickup() kernel.Place {
	return t.pickup
}

func (t *Task) Dropoff() kernel.Place {
	return t.dropoff
}

func (t *Task) Creator() Creator {
	return t.creator
}

// CourierID returns the assigned courier or nil.
func (t *Task) CourierID() *kernel.UUID {
	return t.courierID
}

func (t *Task) Status() Status {
	return t.status
}

func (t *Task) IsChargeable() bool {
	return t.chargeable
}

func (t *Task) Price() int64 {
	return t.price
}

func (t *Task) PaymentStatus() PaymentStatus {
	return t.paymentStatus
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsAssignedTo reports whether courierID currently holds the task.
func (t *Task) IsAssignedTo(courierID kernel.UUID) bool {
	return t.courierID != nil && t.courierID.IsEqual(courierID)
}

// Assign gives a pending task to courierID.
// Repeating the call for the courier that already holds the task is a no-op
// and returns changed=false. Any other holder yields a Conflict.
func (t *Task) Assign(courierID kernel.UUID, now time.Time) (bool, error) {
	if err := courierID.Validate(); err != nil {
		return false, err
	}

	if t.courierID != nil && !t.courierID.IsEqual(courierID) {
		return false, errs.NewConflictErrorWithCause(
			fmt.Sprintf("task %s is held by courier %s", t.id, t.courierID),
			ErrAssignedToAnotherCourier,
		)
	}

	if t.courierID != nil && !t.status.IsTerminal() {
		return false, nil
	}

	if err := t.transition(Assigned, now); err != nil {
		return false, err
	}
	t.courierID = &courierID
	return true, nil
}

// Accept confirms the task on behalf of its courier.
// The ledger must be settled by the caller before the task is persisted.
func (t *Task) Accept(courierID kernel.UUID, now time.Time) error {
	if t.courierID != nil && !t.courierID.IsEqual(courierID) {
		return errs.NewForbiddenError(fmt.Sprintf("task %s is assigned to another courier", t.id))
	}
	if t.status.IsAcceptedOrLater() {
		return errs.NewConflictErrorWithCause(fmt.Sprintf("task %s is %s", t.id, t.status), ErrAlreadyAccepted)
	}
	return t.transition(Accepted, now)
}

// MarkPaid records that the ledger captured the price.
func (t *Task) MarkPaid(now time.Time) {
	t.paymentStatus = Paid
	t.updatedAt = now.UTC()
}

// Advance moves an accepted task forward or cancels it.
// Assignment and acceptance have dedicated methods because they carry extra rules.
func (t *Task) Advance(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if next == Assigned || next == Accepted {
		return errs.NewConflictErrorWithCause(
			fmt.Sprintf("status %s is reached through assignment or acceptance only", next),
			ErrIllegalTransition,
		)
	}
	return t.transition(next, now)
}

func (t *Task) transition(next Status, now time.Time) error {
	if !t.status.CanTransitionTo(next) {
		return errs.NewConflictErrorWithCause(
			fmt.Sprintf("cannot move task %s from %s to %s", t.id, t.status, next),
			ErrIllegalTransition,
		)
	}
	t.status = next
	t.updatedAt = now.UTC()
	return nil
}
