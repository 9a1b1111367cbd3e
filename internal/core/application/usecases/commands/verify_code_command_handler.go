package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrCodeInvalidOrExpired is the cause of the Unauthorized error returned for a wrong,
// reused or expired code.
var ErrCodeInvalidOrExpired = errors.New("invalid or expired code")

// VerifyCodeResult carries the issued token and the principal it was issued to.
// Exactly one of Courier and Customer is set.
type VerifyCodeResult struct {
	Token    string
	Role     kernel.Role
	Courier  *courier.Courier
	Customer *customer.Customer
}

// VerifyCodeCommandHandler consumes a one-time code, finds or creates the
// principal and issues a token. New customers receive their signup credits and
// an empty wallet in the same transaction.
type VerifyCodeCommandHandler struct {
	uowFactory    UoWFactory
	codes         ports.CodeStore
	issuer        ports.TokenIssuer
	ledger        *ledger.Ledger
	signupCredits int
	now           func() time.Time
}

func NewVerifyCodeCommandHandler(
	uowFactory UoWFactory,
	codes ports.CodeStore,
	issuer ports.TokenIssuer,
	ledger *ledger.Ledger,
	signupCredits int,
) VerifyCodeCommandHandler {
	return VerifyCodeCommandHandler{
		uowFactory:    uowFactory,
		codes:         codes,
		issuer:        issuer,
		ledger:        ledger,
		signupCredits: signupCredits,
		now:           time.Now,
	}
}

func (h VerifyCodeCommandHandler) Handle(ctx context.Context, command VerifyCodeCommand) (VerifyCodeResult, error) {
	if err := command.Validate(); err != nil {
		return VerifyCodeResult{}, err
	}

	ok, err := h.codes.Consume(ctx, command.Phone(), command.Code())
	if err != nil {
		return VerifyCodeResult{}, errs.NewDependencyErrorWithCause("code store unavailable", err)
	}
	if !ok {
		return VerifyCodeResult{}, &errs.KindError{
			Kind:   errs.ErrUnauthorized,
			Reason: "invalid or expired code",
			Cause:  ErrCodeInvalidOrExpired,
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return VerifyCodeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result := VerifyCodeResult{Role: command.Role()}
	var subject kernel.UUID

	switch command.Role() {
	case kernel.RoleCustomer:
		result.Customer, err = h.findOrCreateCustomer(ctx, uow, command.Phone())
		if err != nil {
			return VerifyCodeResult{}, err
		}
		subject = result.Customer.ID()
	default:
		result.Courier, err = h.findOrCreateCourier(ctx, uow.CourierRepository(), command.Phone())
		if err != nil {
			return VerifyCodeResult{}, err
		}
		if err = result.Courier.EnsureActive(); err != nil {
			return VerifyCodeResult{}, err
		}
		subject = result.Courier.ID()
	}

	if err = uow.Commit(ctx); err != nil {
		return VerifyCodeResult{}, err
	}

	result.Token, err = h.issuer.Issue(subject, command.Role())
	if err != nil {
		return VerifyCodeResult{}, err
	}
	return result, nil
}

func (h VerifyCodeCommandHandler) findOrCreateCourier(
	ctx context.Context,
	repo ports.CourierRepository,
	phone kernel.Phone,
) (*courier.Courier, error) {
	found, err := repo.GetByPhone(ctx, phone)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := courier.NewCourier(kernel.NewUUID(), phone, "", h.now())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	return repo.GetByPhone(ctx, phone)
}

func (h VerifyCodeCommandHandler) findOrCreateCustomer(ctx context.Context, uow UoW, phone kernel.Phone) (*customer.Customer, error) {
	repo := uow.CustomerRepository()

	found, err := repo.GetByPhone(ctx, phone)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := customer.NewCustomer(kernel.NewUUID(), phone, "", h.signupCredits, h.now())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	stored, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if _, err = h.ledger.EnsureWallet(ctx, uow.WalletRepository(), stored.ID(), wallet.OwnerCustomer); err != nil {
		return nil, err
	}
	return stored, nil
}
