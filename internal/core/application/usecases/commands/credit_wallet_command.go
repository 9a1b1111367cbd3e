package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreditWalletCommandIsNotConstructed = errors.New(
	"CreditWalletCommand must be created via NewCreditWalletCommand constructor",
)

// CreditWalletCommand tops up (or refunds into) the wallet of an owner.
// The wallet is created on first use.
type CreditWalletCommand struct {
	ownerID   kernel.UUID
	ownerKind wallet.OwnerKind
	amount    int64
	txType    wallet.Type
	note      string

	guard guard.ConstructorGuard
}

func NewCreditWalletCommand(ownerID kernel.UUID, ownerKind string, amount int64, txType string, note string) (CreditWalletCommand, error) {
	kind, kindErr := wallet.ParseOwnerKind(ownerKind)

	if txType == "" {
		txType = string(wallet.TypeCredit)
	}
	t, typeErr := wallet.ParseType(txType)
	if typeErr == nil && t == wallet.TypeCapture {
		typeErr = errs.NewValueIsInvalidError("type")
	}

	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}

	if err := errors.Join(ownerID.Validate(), kindErr, typeErr, amountErr); err != nil {
		return CreditWalletCommand{}, err
	}

	return CreditWalletCommand{
		ownerID:   ownerID,
		ownerKind: kind,
		amount:    amount,
		txType:    t,
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreditWalletCommand) Validate() error {
	return c.guard.Validate(ErrCreditWalletCommandIsNotConstructed)
}

func (c CreditWalletCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c CreditWalletCommand) OwnerKind() wallet.OwnerKind {
	return c.ownerKind
}

func (c CreditWalletCommand) Amount() int64 {
	return c.amount
}

func (c CreditWalletCommand) Type() wallet.Type {
	return c.txType
}

func (c CreditWalletCommand) Note() string {
	return c.note
}
