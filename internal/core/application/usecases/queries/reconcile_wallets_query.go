package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReconcileWalletsQueryIsNotConstructed = errors.New(
	"ReconcileWalletsQuery must be created via NewReconcileWalletsQuery constructor",
)

// ReconcileWalletsQuery compares each wallet balance with the sum of its ledger entries.
type ReconcileWalletsQuery struct {
	guard guard.ConstructorGuard
}

func NewReconcileWalletsQuery() ReconcileWalletsQuery {
	return ReconcileWalletsQuery{guard: guard.NewConstructorGuard()}
}

func (q ReconcileWalletsQuery) Validate() error {
	return q.guard.Validate(ErrReconcileWalletsQueryIsNotConstructed)
}

type WalletMismatch struct {
	WalletID  kernel.UUID
	OwnerID   kernel.UUID
	OwnerKind string
	Balance   int64
	Ledger    int64
}

// ReconcileReport is clean when Mismatches is empty.
type ReconcileReport struct {
	Checked    int
	Mismatches []WalletMismatch
}
