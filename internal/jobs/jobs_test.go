package jobs_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPendingDispatcher struct {
	mock.Mock
}

func (m *MockPendingDispatcher) Handle(ctx context.Context, command commands.DispatchPendingTasksCommand) (int, error) {
	args := m.Called(ctx, command)
	return args.Int(0), args.Error(1)
}

type MockWalletReconciler struct {
	mock.Mock
}

func (m *MockWalletReconciler) Handle(ctx context.Context, query queries.ReconcileWalletsQuery) (queries.ReconcileReport, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ReconcileReport), args.Error(1)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestPendingDispatchJob_RunOnce(t *testing.T) {
	dispatcher := new(MockPendingDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.DispatchPendingTasksCommand) bool {
		return c.Validate() == nil && c.BatchSize() > 0
	})).Return(3, nil).Once()
	logger, buf := bufferLogger()

	job := jobs.NewPendingDispatchJob(dispatcher, "", logger)

	assert.Equal(t, 3, job.RunOnce(t.Context()))
	assert.Contains(t, buf.String(), "assigned=3")
	dispatcher.AssertExpectations(t)
}

func TestPendingDispatchJob_RunOnceLogsFailure(t *testing.T) {
	dispatcher := new(MockPendingDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.Anything).Return(1, assert.AnError).Once()
	logger, buf := bufferLogger()

	job := jobs.NewPendingDispatchJob(dispatcher, "", logger)

	assert.Equal(t, 1, job.RunOnce(t.Context()))
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestWalletReconciliationJob_LogsMismatches(t *testing.T) {
	mismatch := queries.WalletMismatch{
		WalletID:  kernel.NewUUID(),
		OwnerID:   kernel.NewUUID(),
		OwnerKind: "courier",
		Balance:   9001,
		Ledger:    9000,
	}
	reconciler := new(MockWalletReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.ReconcileReport{Checked: 4, Mismatches: []queries.WalletMismatch{mismatch}}, nil).Once()
	logger, buf := bufferLogger()

	job := jobs.NewWalletReconciliationJob(reconciler, "", logger)
	report, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 4, report.Checked)
	out := buf.String()
	assert.Contains(t, out, "walletId="+mismatch.WalletID.String())
	assert.Contains(t, out, "balance=9001")
	assert.Contains(t, out, "ledger=9000")
	assert.Contains(t, out, "mismatches=1")
}

func TestWalletReconciliationJob_PropagatesError(t *testing.T) {
	reconciler := new(MockWalletReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).Return(queries.ReconcileReport{}, assert.AnError).Once()
	logger, _ := bufferLogger()

	_, err := jobs.NewWalletReconciliationJob(reconciler, "", logger).RunOnce(t.Context())

	require.ErrorIs(t, err, assert.AnError)
}

func TestJobManager_InvalidScheduleStopsStartedJobs(t *testing.T) {
	logger, _ := bufferLogger()
	manager := jobs.NewJobManager(new(MockPendingDispatcher), new(MockWalletReconciler),
		jobs.Schedules{Reconciliation: "not a cron spec"}, logger)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet reconciliation")
}

func TestJobManager_StartAndStop(t *testing.T) {
	logger, _ := bufferLogger()
	manager := jobs.NewJobManager(new(MockPendingDispatcher), new(MockWalletReconciler),
		jobs.Schedules{PendingDispatch: "0 0 0 1 1 *", Reconciliation: "0 0 0 1 1 *"}, logger)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
