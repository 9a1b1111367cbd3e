package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role names the kind of principal a session token was issued to.
type Role string

const (
	RoleCourier  Role = "courier"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts the wire names above. "rider" is an alias for courier
// kept for mobile clients built against the older API.
func ParseRole(s string) (Role, error) {
	switch s {
	case "courier", "rider":
		return RoleCourier, nil
	case "customer":
		return RoleCustomer, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

func (r Role) String() string {
	return string(r)
}
