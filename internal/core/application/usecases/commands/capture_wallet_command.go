package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCaptureWalletCommandIsNotConstructed = errors.New(
	"CaptureWalletCommand must be created via NewCaptureWalletCommand constructor",
)

// CaptureWalletCommand debits an existing wallet on behalf of an admin.
type CaptureWalletCommand struct {
	ownerID   kernel.UUID
	ownerKind wallet.OwnerKind
	amount    int64
	note      string

	guard guard.ConstructorGuard
}

func NewCaptureWalletCommand(ownerID kernel.UUID, ownerKind string, amount int64, note string) (CaptureWalletCommand, error) {
	kind, kindErr := wallet.ParseOwnerKind(ownerKind)

	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}

	if err := errors.Join(ownerID.Validate(), kindErr, amountErr); err != nil {
		return CaptureWalletCommand{}, err
	}

	return CaptureWalletCommand{
		ownerID:   ownerID,
		ownerKind: kind,
		amount:    amount,
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CaptureWalletCommand) Validate() error {
	return c.guard.Validate(ErrCaptureWalletCommandIsNotConstructed)
}

func (c CaptureWalletCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c CaptureWalletCommand) OwnerKind() wallet.OwnerKind {
	return c.ownerKind
}

func (c CaptureWalletCommand) Amount() int64 {
	return c.amount
}

func (c CaptureWalletCommand) Note() string {
	return c.note
}
