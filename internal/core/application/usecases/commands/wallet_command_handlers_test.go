package commands_test

import (
	"testing"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreditWalletCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	w := newWallet(t, ownerID, wallet.OwnerCustomer, 100)

	cmd, err := commands.NewCreditWalletCommand(ownerID, "customer", 5000, "", "cash top-up")
	require.NoError(t, err)

	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	factory := new(MockWalletUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Ensure", ctx, ownerID, wallet.OwnerCustomer).Return(w, nil).Once(),
		walletRepo.On("GetForUpdate", ctx, w.ID()).Return(w, nil).Once(),
		walletRepo.On("Update", ctx, w).Return(nil).Once(),
		walletRepo.On("AppendTransaction", ctx, mock.MatchedBy(func(tx wallet.Transaction) bool {
			return tx.Amount == 5000 && tx.Type == wallet.TypeCredit && tx.Meta["note"] == "cash top-up"
		})).Return(nil).Once(),
		walletRepo.On("GetForUpdate", ctx, w.ID()).Return(w, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreditWalletCommandHandler(factory, ledger.New())
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(5100), res.Wallet.Balance())
	assert.Equal(t, int64(5000), res.Transaction.Amount)
	walletRepo.AssertExpectations(t)
}

func TestCaptureWalletCommandHandler_Handle_InsufficientFunds(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	w := newWallet(t, ownerID, wallet.OwnerCourier, 100)

	cmd, err := commands.NewCaptureWalletCommand(ownerID, "rider", 101, "")
	require.NoError(t, err)

	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	factory := new(MockWalletUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("WalletRepository").Return(walletRepo)
	uow.On("Rollback", ctx).Return(nil)
	walletRepo.On("GetByOwner", ctx, ownerID, wallet.OwnerCourier).Return(w, nil)
	walletRepo.On("GetForUpdate", ctx, w.ID()).Return(w, nil)

	handler := commands.NewCaptureWalletCommandHandler(factory, ledger.New())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPaymentRequired)
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	assert.Equal(t, int64(100), w.Balance())
	walletRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewCreditWalletCommand_Invalid(t *testing.T) {
	t.Run("capture type", func(t *testing.T) {
		_, err := commands.NewCreditWalletCommand(kernel.NewUUID(), "customer", 10, "capture", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := commands.NewCreditWalletCommand(kernel.NewUUID(), "customer", 0, "credit", "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown owner kind", func(t *testing.T) {
		_, err := commands.NewCreditWalletCommand(kernel.NewUUID(), "merchant", 10, "credit", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
