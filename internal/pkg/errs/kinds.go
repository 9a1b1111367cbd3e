package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrPaymentRequired = errors.New("payment required")
	ErrRateLimited     = errors.New("rate limited")
	ErrDependency      = errors.New("dependency failure")
)

// KindError attaches a human-readable reason to one of the sentinel kinds above.
// Domain packages wrap it with their own sentinels so callers can match either.
type KindError struct {
	Kind   error
	Reason string
	Cause  error
}

func (e *KindError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *KindError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func NewUnauthorizedError(reason string) *KindError {
	return &KindError{Kind: ErrUnauthorized, Reason: reason}
}

func NewForbiddenError(reason string) *KindError {
	return &KindError{Kind: ErrForbidden, Reason: reason}
}

func NewConflictError(reason string) *KindError {
	return &KindError{Kind: ErrConflict, Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *KindError {
	return &KindError{Kind: ErrConflict, Reason: reason, Cause: cause}
}

func NewPaymentRequiredErrorWithCause(reason string, cause error) *KindError {
	return &KindError{Kind: ErrPaymentRequired, Reason: reason, Cause: cause}
}

func NewRateLimitedError(reason string) *KindError {
	return &KindError{Kind: ErrRateLimited, Reason: reason}
}

func NewDependencyErrorWithCause(reason string, cause error) *KindError {
	return &KindError{Kind: ErrDependency, Reason: reason, Cause: cause}
}

// Kind names as exposed to API clients.
const (
	KindInvalidInput    = "invalid_input"
	KindUnauthorized    = "unauthorized"
	KindForbidden       = "forbidden"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindPaymentRequired = "payment_required"
	KindRateLimited     = "rate_limited"
	KindDependency      = "dependency"
	KindInternal        = "internal"
)

// KindOf names the kind err belongs to. Errors outside every kind are internal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrPaymentRequired):
		return KindPaymentRequired
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrDependency):
		return KindDependency
	default:
		return KindInternal
	}
}
