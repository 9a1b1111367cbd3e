// Package task provides the Task aggregate and its lifecycle state machine.
//
// The package includes:
//   - Task: pickup, dropoff, creator, assignment, price and payment state
//   - Status: pending, assigned, accepted, picked_up, delivered, cancelled
//   - PaymentStatus: unpaid, paid, waived
//   - Creator: customer or admin
//
// Every refused transition is an errs.ErrConflict whose cause is one of
// ErrIllegalTransition, ErrAlreadyAccepted or ErrAssignedToAnotherCourier.
// Accepting a task held by another courier is an errs.ErrForbidden.
package task
