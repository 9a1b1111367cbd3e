package ports

import (
	"dispatch/internal/core/domain/model/kernel"
)

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	Subject kernel.UUID
	Role    kernel.Role
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(subject kernel.UUID, role kernel.Role) (string, error)

	// Verify returns an errs.ErrUnauthorized error for malformed, expired or foreign tokens.
	Verify(token string) (Principal, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns an error when password does not match hash.
	Compare(hash, password string) error
}
