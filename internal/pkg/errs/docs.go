// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Validation failures use typed errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value falls outside its allowed bounds
//   - ObjectNotFoundError: an identifier matched nothing
//
// Business refusals use KindError with one of the sentinels ErrUnauthorized,
// ErrForbidden, ErrConflict, ErrPaymentRequired, ErrRateLimited or ErrDependency.
//
// Every error unwraps to its sentinel so transport adapters can classify
// failures with errors.Is without knowing the concrete type.
package errs
