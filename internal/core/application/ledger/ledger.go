// Package ledger moves money between wallets inside a caller's unit of work.
//
// Every mutation follows the same critical section:
//
//	lock wallet row -> check -> mutate balance -> append transaction
//
// and both writes commit or roll back with the surrounding transaction,
// which keeps sum(transactions.amount) equal to the balance for every wallet.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Ledger is stateless; the repository passed to each call carries the transaction.
type Ledger struct {
	now func() time.Time
}

func New() *Ledger {
	return &Ledger{now: time.Now}
}

// NewWithClock is used by tests that assert on timestamps.
func NewWithClock(now func() time.Time) *Ledger {
	return &Ledger{now: now}
}

// EnsureWallet returns the wallet of (ownerID, kind), creating an empty one if needed.
func (l *Ledger) EnsureWallet(ctx context.Context, repo ports.WalletRepository, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("ownerID", err)
	}
	if _, err := wallet.ParseOwnerKind(string(kind)); err != nil {
		return nil, err
	}
	return repo.Ensure(ctx, ownerID, kind)
}

// Capture debits amount from walletID. Insufficient balance is reported as
// PaymentRequired wrapping wallet.ErrInsufficientFunds; nothing is written in that case.
func (l *Ledger) Capture(
	ctx context.Context,
	repo ports.WalletRepository,
	walletID kernel.UUID,
	amount int64,
	meta wallet.Meta,
) (wallet.Transaction, error) {
	w, err := repo.GetForUpdate(ctx, walletID)
	if err != nil {
		return wallet.Transaction{}, err
	}

	tx, err := w.Capture(amount, meta, l.now())
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			return wallet.Transaction{}, errs.NewPaymentRequiredErrorWithCause(
				fmt.Sprintf("wallet %s cannot cover %d", walletID, amount), err)
		}
		return wallet.Transaction{}, err
	}

	if err = l.persist(ctx, repo, w, tx); err != nil {
		return wallet.Transaction{}, err
	}
	return tx, nil
}

// Credit adds amount to walletID as a credit or refund entry.
func (l *Ledger) Credit(
	ctx context.Context,
	repo ports.WalletRepository,
	walletID kernel.UUID,
	amount int64,
	txType wallet.Type,
	meta wallet.Meta,
) (wallet.Transaction, error) {
	w, err := repo.GetForUpdate(ctx, walletID)
	if err != nil {
		return wallet.Transaction{}, err
	}

	tx, err := w.Credit(amount, txType, meta, l.now())
	if err != nil {
		return wallet.Transaction{}, err
	}

	if err = l.persist(ctx, repo, w, tx); err != nil {
		return wallet.Transaction{}, err
	}
	return tx, nil
}

func (l *Ledger) persist(ctx context.Context, repo ports.WalletRepository, w *wallet.Wallet, tx wallet.Transaction) error {
	if err := repo.Update(ctx, w); err != nil {
		return err
	}
	return repo.AppendTransaction(ctx, tx)
}
