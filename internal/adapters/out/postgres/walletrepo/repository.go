package walletrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements ports.WalletRepository using GORM.
// Balance changes are only safe between GetForUpdate and the end of the
// surrounding transaction; the ledger service is the only writer.
type GormWalletRepository struct {
	db *gorm.DB
}

func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Ensure inserts with ON CONFLICT DO NOTHING and then reads the row back,
// so racing callers all return the single surviving wallet.
func (r *GormWalletRepository) Ensure(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	fresh, err := wallet.NewWallet(kernel.NewUUID(), ownerID, kind, time.Now())
	if err != nil {
		return nil, err
	}

	dto := WalletDTO{
		ID:        fresh.ID().Bytes(),
		OwnerID:   ownerID.Bytes(),
		OwnerKind: string(kind),
		UpdatedAt: fresh.UpdatedAt(),
	}
	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "owner_kind"}},
			DoNothing: true,
		}).
		Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.GetByOwner(ctx, ownerID, kind)
}

func (r *GormWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	var dto WalletDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_id = ? AND owner_kind = ?", ownerID.Bytes(), string(kind)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(string(kind)+" wallet", ownerID.String())
		}
		return nil, err
	}
	return walletToDomain(dto)
}

func (r *GormWalletRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	var dto WalletDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", id.String())
		}
		return nil, err
	}
	return walletToDomain(dto)
}

func (r *GormWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("id = ?", w.ID().Bytes()).
		Updates(map[string]any{
			"balance":    w.Balance(),
			"updated_at": w.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wallet", w.ID().String())
	}
	return nil
}

func (r *GormWalletRepository) AppendTransaction(ctx context.Context, tx wallet.Transaction) error {
	dto, err := transactionFromDomain(tx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormWalletRepository) ListTransactions(ctx context.Context, walletID kernel.UUID, limit int) ([]wallet.Transaction, error) {
	q := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID.Bytes()).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var dtos []TransactionDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	txs := make([]wallet.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		tx, err := transactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
