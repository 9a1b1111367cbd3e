package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"
)

// RegisterCustomerCommandHandler creates a customer with signup credits and an empty wallet.
// A phone that already belongs to a customer is a Conflict.
type RegisterCustomerCommandHandler struct {
	uowFactory    UoWFactory
	ledger        *ledger.Ledger
	signupCredits int
	now           func() time.Time
}

func NewRegisterCustomerCommandHandler(uowFactory UoWFactory, ledger *ledger.Ledger, signupCredits int) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{
		uowFactory:    uowFactory,
		ledger:        ledger,
		signupCredits: signupCredits,
		now:           time.Now,
	}
}

func (h RegisterCustomerCommandHandler) Handle(ctx context.Context, command RegisterCustomerCommand) (*customer.Customer, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()

	_, err := repo.GetByPhone(ctx, command.Phone())
	if err == nil {
		return nil, errs.NewConflictError(fmt.Sprintf("customer with phone %s already exists", command.Phone()))
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := customer.NewCustomer(kernel.NewUUID(), command.Phone(), command.Name(), h.signupCredits, h.now())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}

	stored, err := repo.GetByPhone(ctx, command.Phone())
	if err != nil {
		return nil, err
	}
	if !stored.ID().IsEqual(created.ID()) {
		return nil, errs.NewConflictError(fmt.Sprintf("customer with phone %s already exists", command.Phone()))
	}

	if _, err = h.ledger.EnsureWallet(ctx, uow.WalletRepository(), created.ID(), wallet.OwnerCustomer); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
