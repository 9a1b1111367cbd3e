package ledger_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Ensure(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID, kind wallet.OwnerKind) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWalletRepository) AppendTransaction(ctx context.Context, tx wallet.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID kernel.UUID, limit int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func restoreWallet(t *testing.T, balance int64) *wallet.Wallet {
	t.Helper()
	w, err := wallet.RestoreWallet(kernel.NewUUID(), kernel.NewUUID(), wallet.OwnerCustomer, balance, now)
	require.NoError(t, err)
	return w
}

func TestLedger_Capture(t *testing.T) {
	ctx := t.Context()
	w := restoreWallet(t, 15000)
	repo := new(MockWalletRepository)

	var appended wallet.Transaction
	mock.InOrder(
		repo.On("GetForUpdate", ctx, w.ID()).Return(w, nil).Once(),
		repo.On("Update", ctx, w).Return(nil).Once(),
		repo.On("AppendTransaction", ctx, mock.Anything).
			Run(func(args mock.Arguments) { appended = args.Get(1).(wallet.Transaction) }).
			Return(nil).Once(),
	)

	tx, err := ledger.NewWithClock(func() time.Time { return now }).
		Capture(ctx, repo, w.ID(), 10000, wallet.Meta{"taskId": "t-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(5000), w.Balance())
	assert.Equal(t, int64(-10000), tx.Amount)
	assert.Equal(t, wallet.TypeCapture, tx.Type)
	assert.Equal(t, now, tx.CreatedAt)
	assert.Equal(t, tx, appended)
}

func TestLedger_Capture_InsufficientFunds(t *testing.T) {
	ctx := t.Context()
	w := restoreWallet(t, 9999)
	repo := new(MockWalletRepository)
	repo.On("GetForUpdate", ctx, w.ID()).Return(w, nil)

	_, err := ledger.New().Capture(ctx, repo, w.ID(), 10000, nil)

	require.ErrorIs(t, err, errs.ErrPaymentRequired)
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	assert.Equal(t, int64(9999), w.Balance())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
}

func TestLedger_Credit(t *testing.T) {
	ctx := t.Context()
	w := restoreWallet(t, 0)
	repo := new(MockWalletRepository)
	repo.On("GetForUpdate", ctx, w.ID()).Return(w, nil)
	repo.On("Update", ctx, w).Return(nil)
	repo.On("AppendTransaction", ctx, mock.Anything).Return(nil)

	tx, err := ledger.New().Credit(ctx, repo, w.ID(), 9000, wallet.TypeRefund, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(9000), w.Balance())
	assert.Equal(t, wallet.TypeRefund, tx.Type)
	assert.Equal(t, int64(9000), tx.Amount)
}

func TestLedger_Credit_RejectsCaptureType(t *testing.T) {
	ctx := t.Context()
	w := restoreWallet(t, 0)
	repo := new(MockWalletRepository)
	repo.On("GetForUpdate", ctx, w.ID()).Return(w, nil)

	_, err := ledger.New().Credit(ctx, repo, w.ID(), 10, wallet.TypeCapture, nil)

	require.Error(t, err)
	assert.Zero(t, w.Balance())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLedger_Capture_WalletMissing(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	repo := new(MockWalletRepository)
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("wallet", id))

	_, err := ledger.New().Capture(ctx, repo, id, 1, nil)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestLedger_EnsureWallet_RejectsUnknownKind(t *testing.T) {
	repo := new(MockWalletRepository)

	_, err := ledger.New().EnsureWallet(t.Context(), repo, kernel.NewUUID(), wallet.OwnerKind("merchant"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	repo.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything, mock.Anything)
}
