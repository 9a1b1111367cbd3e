package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallets and their ledger entries.
type WalletRepository interface {
	// Ensure creates the wallet of (ownerID, kind) if it does not exist yet and returns it.
	// Concurrent calls for the same owner converge on one row.
	Ensure(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error)

	// GetByOwner returns errs.ErrObjectNotFound when the owner has no wallet.
	GetByOwner(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error)

	// GetForUpdate loads a wallet under a row lock held until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error)

	// Update persists balance and updated_at.
	Update(ctx context.Context, w *wallet.Wallet) error

	// AppendTransaction inserts a ledger entry. Entries are never updated or deleted.
	AppendTransaction(ctx context.Context, tx wallet.Transaction) error

	// ListTransactions returns the newest entries first, at most limit (0 means all).
	ListTransactions(ctx context.Context, walletID kernel.UUID, limit int) ([]wallet.Transaction, error)
}
