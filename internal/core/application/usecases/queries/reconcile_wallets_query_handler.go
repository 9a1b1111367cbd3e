package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReconcileWalletsQueryHandler struct {
	db *gorm.DB
}

func NewReconcileWalletsQueryHandler(db *gorm.DB) ReconcileWalletsQueryHandler {
	return ReconcileWalletsQueryHandler{db: db}
}

func (h ReconcileWalletsQueryHandler) Handle(ctx context.Context, query ReconcileWalletsQuery) (ReconcileReport, error) {
	if err := query.Validate(); err != nil {
		return ReconcileReport{}, err
	}

	report := ReconcileReport{Mismatches: make([]WalletMismatch, 0)}

	var checked int64
	if err := h.db.WithContext(ctx).Raw("SELECT COUNT(*) FROM wallets").Row().Scan(&checked); err != nil {
		return ReconcileReport{}, err
	}
	report.Checked = int(checked)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			w.id,
			w.owner_id,
			w.owner_kind,
			w.balance,
			COALESCE(SUM(t.amount), 0) AS ledger
		FROM wallets w
		LEFT JOIN wallet_transactions t ON t.wallet_id = w.id
		GROUP BY w.id, w.owner_id, w.owner_kind, w.balance
		HAVING w.balance <> COALESCE(SUM(t.amount), 0)
		ORDER BY w.id
	`).Rows()
	if err != nil {
		return ReconcileReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var m WalletMismatch
		var walletID, owner uuid.UUID
		if err = rows.Scan(&walletID, &owner, &m.OwnerKind, &m.Balance, &m.Ledger); err != nil {
			return ReconcileReport{}, err
		}
		if m.WalletID, err = kernel.UUIDFromBytes(walletID[:]); err != nil {
			return ReconcileReport{}, err
		}
		if m.OwnerID, err = kernel.UUIDFromBytes(owner[:]); err != nil {
			return ReconcileReport{}, err
		}
		report.Mismatches = append(report.Mismatches, m)
	}
	if err = rows.Err(); err != nil {
		return ReconcileReport{}, err
	}
	return report, nil
}
