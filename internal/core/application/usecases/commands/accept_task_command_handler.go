package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrCustomerWalletMissing is the cause of PaymentRequired when the paying customer has no wallet.
var ErrCustomerWalletMissing = errors.New("customer wallet not found")

// AcceptTaskCommandHandler moves an assigned task to accepted and settles it.
//
// For a chargeable task the price is captured from the customer wallet and the
// courier wallet is credited with the price minus the platform fee, all in the
// transaction that holds the task row lock. Any failure, including
// insufficient funds, rolls back the whole step and the task stays assigned.
type AcceptTaskCommandHandler struct {
	uowFactory UoWFactory
	ledger     *ledger.Ledger
	splitter   services.FeeSplitter
	publisher  ports.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewAcceptTaskCommandHandler(
	uowFactory UoWFactory,
	ledger *ledger.Ledger,
	splitter services.FeeSplitter,
	publisher ports.Publisher,
	logger *slog.Logger,
) AcceptTaskCommandHandler {
	return AcceptTaskCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		splitter:   splitter,
		publisher:  publisher,
		logger:     logger.With("component", "accept-task"),
		now:        time.Now,
	}
}

func (h AcceptTaskCommandHandler) Handle(ctx context.Context, command AcceptTaskCommand) (*task.Task, error) {
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

	taskRepo := uow.TaskRepository()

	t, err := taskRepo.GetForUpdate(ctx, command.TaskID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if err = t.Accept(command.CourierID(), now); err != nil {
		return nil, err
	}

	if t.IsChargeable() && t.PaymentStatus() == task.Unpaid {
		if err = h.settle(ctx, uow.WalletRepository(), t); err != nil {
			return nil, err
		}
		t.MarkPaid(now)
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, ports.AdminChannel, ports.EventTaskAccepted, newTaskEvent(t)); err != nil {
		h.logger.Warn("failed to publish acceptance", "taskId", t.ID().String(), "error", err)
	}
	return t, nil
}

func (h AcceptTaskCommandHandler) settle(ctx context.Context, repo ports.WalletRepository, t *task.Task) error {
	creator := t.Creator()
	if creator.CustomerID == nil {
		return errs.NewPaymentRequiredErrorWithCause(
			fmt.Sprintf("task %s has no paying customer", t.ID()), ErrCustomerWalletMissing)
	}

	customerWallet, err := repo.GetByOwner(ctx, *creator.CustomerID, wallet.OwnerCustomer)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewPaymentRequiredErrorWithCause(
			fmt.Sprintf("customer %s has no wallet", creator.CustomerID), ErrCustomerWalletMissing)
	}
	if err != nil {
		return err
	}

	fee, payout, err := h.splitter.Split(t.Price())
	if err != nil {
		return err
	}

	meta := wallet.Meta{"taskId": t.ID().String(), "platformFee": fee}

	if _, err = h.ledger.Capture(ctx, repo, customerWallet.ID(), t.Price(), meta); err != nil {
		return err
	}

	if payout == 0 {
		return nil
	}

	courierWallet, err := h.ledger.EnsureWallet(ctx, repo, *t.CourierID(), wallet.OwnerCourier)
	if err != nil {
		return err
	}
	_, err = h.ledger.Credit(ctx, repo, courierWallet.ID(), payout, wallet.TypeCredit, meta)
	return err
}
