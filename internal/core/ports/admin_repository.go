package ports

import (
	"context"

	"dispatch/internal/core/domain/model/admin"
)

type AdminRepository interface {
	// Upsert inserts an admin or replaces name and password hash of the one with the same e-mail.
	Upsert(ctx context.Context, admin *admin.Admin) error

	// GetByEmail returns errs.ErrObjectNotFound for unknown addresses.
	GetByEmail(ctx context.Context, email string) (*admin.Admin, error)
}
