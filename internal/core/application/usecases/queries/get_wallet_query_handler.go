package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetWalletQueryHandler struct {
	db *gorm.DB
}

func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for owners whose wallet was never created.
func (h GetWalletQueryHandler) Handle(ctx context.Context, query GetWalletQuery) (WalletView, error) {
	if err := query.Validate(); err != nil {
		return WalletView{}, err
	}

	var (
		view    WalletView
		id      uuid.UUID
		ownerID uuid.UUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, owner_id, owner_kind, balance, updated_at
		FROM wallets
		WHERE owner_id = ? AND owner_kind = ?
	`, query.OwnerID().Bytes(), string(query.OwnerKind())).
		Row().
		Scan(&id, &ownerID, &view.OwnerKind, &view.Balance, &view.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return WalletView{}, errs.NewObjectNotFoundError(string(query.OwnerKind())+" wallet", query.OwnerID().String())
	}
	if err != nil {
		return WalletView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return WalletView{}, err
	}
	if view.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
		return WalletView{}, err
	}

	view.Transactions, err = h.history(ctx, id, query.History())
	if err != nil {
		return WalletView{}, err
	}
	return view, nil
}

func (h GetWalletQueryHandler) history(ctx context.Context, walletID uuid.UUID, limit int) ([]TransactionView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, amount, type, meta, created_at
		FROM wallet_transactions
		WHERE wallet_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, walletID, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]TransactionView, 0)
	for rows.Next() {
		var (
			tx   TransactionView
			id   uuid.UUID
			meta []byte
		)
		if err = rows.Scan(&id, &tx.Amount, &tx.Type, &meta, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if tx.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		tx.Meta = map[string]any{}
		if len(meta) > 0 {
			if err = json.Unmarshal(meta, &tx.Meta); err != nil {
				return nil, err
			}
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
