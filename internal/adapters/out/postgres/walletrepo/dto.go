// Package walletrepo persists wallets and their append-only transaction log.
package walletrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// WalletDTO is one wallet row; (owner_id, owner_kind) is unique.
type WalletDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_owner,priority:1"`
	OwnerKind string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_wallet_owner,priority:2"`
	Balance   int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (WalletDTO) TableName() string {
	return "wallets"
}

type TransactionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID  uuid.UUID `gorm:"type:uuid;not null;index:idx_wallet_tx_created,priority:1"`
	Amount    int64     `gorm:"not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	Meta      string    `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time `gorm:"not null;index:idx_wallet_tx_created,priority:2,sort:desc"`
}

func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

func walletToDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	kind, err := wallet.ParseOwnerKind(dto.OwnerKind)
	if err != nil {
		return nil, err
	}
	return wallet.RestoreWallet(id, ownerID, kind, dto.Balance, dto.UpdatedAt)
}

func transactionFromDomain(tx wallet.Transaction) (TransactionDTO, error) {
	meta := tx.Meta
	if meta == nil {
		meta = wallet.Meta{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return TransactionDTO{}, err
	}
	return TransactionDTO{
		ID:        tx.ID.Bytes(),
		WalletID:  tx.WalletID.Bytes(),
		Amount:    tx.Amount,
		Type:      string(tx.Type),
		Meta:      string(raw),
		CreatedAt: tx.CreatedAt,
	}, nil
}

func transactionToDomain(dto TransactionDTO) (wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return wallet.Transaction{}, err
	}
	walletID, err := kernel.UUIDFromBytes(dto.WalletID[:])
	if err != nil {
		return wallet.Transaction{}, err
	}
	txType, err := wallet.ParseType(dto.Type)
	if err != nil {
		return wallet.Transaction{}, err
	}

	meta := wallet.Meta{}
	if dto.Meta != "" {
		if err = json.Unmarshal([]byte(dto.Meta), &meta); err != nil {
			return wallet.Transaction{}, err
		}
	}

	return wallet.Transaction{
		ID:        id,
		WalletID:  walletID,
		Amount:    dto.Amount,
		Type:      txType,
		Meta:      meta,
		CreatedAt: dto.CreatedAt,
	}, nil
}
