package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const defaultWalletHistory = 20

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery reads a wallet with its most recent ledger entries.
type GetWalletQuery struct {
	ownerID   kernel.UUID
	ownerKind wallet.OwnerKind
	history   int

	guard guard.ConstructorGuard
}

// NewGetWalletQuery uses 20 entries of history when history is zero.
func NewGetWalletQuery(ownerID kernel.UUID, ownerKind string, history int) (GetWalletQuery, error) {
	kind, kindErr := wallet.ParseOwnerKind(ownerKind)

	var historyErr error
	if history < 0 {
		historyErr = errs.NewValueIsOutOfRangeError("history", history, 0, "unbounded")
	}
	if err := errors.Join(ownerID.Validate(), kindErr, historyErr); err != nil {
		return GetWalletQuery{}, err
	}

	if history == 0 {
		history = defaultWalletHistory
	}
	return GetWalletQuery{ownerID: ownerID, ownerKind: kind, history: history, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

func (q GetWalletQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q GetWalletQuery) OwnerKind() wallet.OwnerKind {
	return q.ownerKind
}

func (q GetWalletQuery) History() int {
	return q.history
}

type TransactionView struct {
	ID        kernel.UUID
	Amount    int64
	Type      string
	Meta      map[string]any
	CreatedAt time.Time
}

type WalletView struct {
	ID           kernel.UUID
	OwnerID      kernel.UUID
	OwnerKind    string
	Balance      int64
	UpdatedAt    time.Time
	Transactions []TransactionView
}
