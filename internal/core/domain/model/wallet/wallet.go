package wallet

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")
	// ErrInsufficientFunds is returned by Capture when the balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// OwnerKind distinguishes courier wallets from customer wallets.
type OwnerKind string

const (
	OwnerCourier  OwnerKind = "courier"
	OwnerCustomer OwnerKind = "customer"
)

func ParseOwnerKind(s string) (OwnerKind, error) {
	switch OwnerKind(s) {
	case OwnerCourier, OwnerCustomer:
		return OwnerKind(s), nil
	case "rider":
		return OwnerCourier, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("ownerKind", fmt.Errorf("%q is not courier or customer", s))
	}
}

// Wallet holds an integer balance in minor currency units.
//
// Capture and Credit mutate the in-memory balance and return the ledger entry
// describing the change. The caller persists both inside one transaction while
// holding the wallet row lock; that pairing is what keeps
// sum(transactions.amount) == balance.
type Wallet struct {
	id            kernel.UUID
	ownerID       kernel.UUID
	ownerKind     OwnerKind
	balance       int64
	updatedAt     time.Time
	isConstructed bool
}

func NewWallet(id, ownerID kernel.UUID, kind OwnerKind, now time.Time) (*Wallet, error) {
	_, kindErr := ParseOwnerKind(string(kind))
	if err := errors.Join(id.Validate(), ownerID.Validate(), kindErr); err != nil {
		return nil, err
	}
	return &Wallet{
		id:            id,
		ownerID:       ownerID,
		ownerKind:     kind,
		updatedAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreWallet(id, ownerID kernel.UUID, kind OwnerKind, balance int64, updatedAt time.Time) (*Wallet, error) {
	w, err := NewWallet(id, ownerID, kind, updatedAt)
	if err != nil {
		return nil, err
	}
	w.balance = balance
	return w, nil
}

func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

func (w *Wallet) ID() kernel.UUID {
	return w.id
}

func (w *Wallet) OwnerID() kernel.UUID {
	return w.ownerID
}

func (w *Wallet) OwnerKind() OwnerKind {
	return w.ownerKind
}

func (w *Wallet) Balance() int64 {
	return w.balance
}

func (w *Wallet) UpdatedAt() time.Time {
	return w.updatedAt
}

// Capture debits amount. The balance never goes negative.
func (w *Wallet) Capture(amount int64, meta Meta, now time.Time) (Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return Transaction{}, err
	}
	if w.balance < amount {
		return Transaction{}, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientFunds, w.balance, amount)
	}

	w.balance -= amount
	w.updatedAt = now.UTC()
	return newTransaction(w.id, -amount, TypeCapture, meta, now), nil
}

// Credit adds amount. txType must be TypeCredit or TypeRefund.
func (w *Wallet) Credit(amount int64, txType Type, meta Meta, now time.Time) (Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return Transaction{}, err
	}
	if txType != TypeCredit && txType != TypeRefund {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%s cannot increase a balance", txType))
	}

	w.balance += amount
	w.updatedAt = now.UTC()
	return newTransaction(w.id, amount, txType, meta, now), nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}
	return nil
}
