package wallet

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Type classifies a ledger entry.
type Type string

const (
	TypeCapture Type = "capture"
	TypeCredit  Type = "credit"
	TypeRefund  Type = "refund"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeCapture, TypeCredit, TypeRefund:
		return Type(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a transaction type", s))
	}
}

// Meta is free-form context stored with a ledger entry, e.g. {"taskId": "..."}.
type Meta map[string]any

// Transaction is an append-only ledger entry. Amount is signed:
// captures are negative, credits and refunds positive.
type Transaction struct {
	ID        kernel.UUID
	WalletID  kernel.UUID
	Amount    int64
	Type      Type
	Meta      Meta
	CreatedAt time.Time
}

func newTransaction(walletID kernel.UUID, amount int64, txType Type, meta Meta, now time.Time) Transaction {
	if meta == nil {
		meta = Meta{}
	}
	return Transaction{
		ID:        kernel.NewUUID(),
		WalletID:  walletID,
		Amount:    amount,
		Type:      txType,
		Meta:      meta,
		CreatedAt: now.UTC(),
	}
}

// Sum returns the signed total of txs.
func Sum(txs []Transaction) int64 {
	var total int64
	for _, tx := range txs {
		total += tx.Amount
	}
	return total
}
