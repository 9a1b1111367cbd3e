package commands

import (
	"context"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/domain/model/wallet"
)

// WalletMovement is the wallet after a ledger operation and the entry that produced it.
type WalletMovement struct {
	Wallet      *wallet.Wallet
	Transaction wallet.Transaction
}

type CreditWalletCommandHandler struct {
	uowFactory WalletUoWFactory
	ledger     *ledger.Ledger
}

func NewCreditWalletCommandHandler(uowFactory WalletUoWFactory, ledger *ledger.Ledger) CreditWalletCommandHandler {
	return CreditWalletCommandHandler{uowFactory: uowFactory, ledger: ledger}
}

func (h CreditWalletCommandHandler) Handle(ctx context.Context, command CreditWalletCommand) (WalletMovement, error) {
	if err := command.Validate(); err != nil {
		return WalletMovement{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return WalletMovement{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WalletRepository()

	w, err := h.ledger.EnsureWallet(ctx, repo, command.OwnerID(), command.OwnerKind())
	if err != nil {
		return WalletMovement{}, err
	}

	tx, err := h.ledger.Credit(ctx, repo, w.ID(), command.Amount(), command.Type(), noteMeta(command.Note()))
	if err != nil {
		return WalletMovement{}, err
	}

	updated, err := repo.GetForUpdate(ctx, w.ID())
	if err != nil {
		return WalletMovement{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return WalletMovement{}, err
	}
	return WalletMovement{Wallet: updated, Transaction: tx}, nil
}

type CaptureWalletCommandHandler struct {
	uowFactory WalletUoWFactory
	ledger     *ledger.Ledger
}

func NewCaptureWalletCommandHandler(uowFactory WalletUoWFactory, ledger *ledger.Ledger) CaptureWalletCommandHandler {
	return CaptureWalletCommandHandler{uowFactory: uowFactory, ledger: ledger}
}

// Handle returns PaymentRequired when the balance does not cover the amount
// and ObjectNotFound when the owner has no wallet.
func (h CaptureWalletCommandHandler) Handle(ctx context.Context, command CaptureWalletCommand) (WalletMovement, error) {
	if err := command.Validate(); err != nil {
		return WalletMovement{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return WalletMovement{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WalletRepository()

	w, err := repo.GetByOwner(ctx, command.OwnerID(), command.OwnerKind())
	if err != nil {
		return WalletMovement{}, err
	}

	tx, err := h.ledger.Capture(ctx, repo, w.ID(), command.Amount(), noteMeta(command.Note()))
	if err != nil {
		return WalletMovement{}, err
	}

	updated, err := repo.GetForUpdate(ctx, w.ID())
	if err != nil {
		return WalletMovement{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return WalletMovement{}, err
	}
	return WalletMovement{Wallet: updated, Transaction: tx}, nil
}

func noteMeta(note string) wallet.Meta {
	meta := wallet.Meta{"source": "admin"}
	if note != "" {
		meta["note"] = note
	}
	return meta
}
