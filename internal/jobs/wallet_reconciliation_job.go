package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultReconciliationSpec runs at 03:00 every day.
const DefaultReconciliationSpec = "0 0 3 * * *"

type WalletReconciler interface {
	Handle(ctx context.Context, query queries.ReconcileWalletsQuery) (queries.ReconcileReport, error)
}

// WalletReconciliationJob compares each wallet balance with the sum of its
// transactions and logs every mismatch. It never corrects balances.
type WalletReconciliationJob struct {
	handler WalletReconciler
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewWalletReconciliationJob(handler WalletReconciler, spec string, logger *slog.Logger) *WalletReconciliationJob {
	if spec == "" {
		spec = DefaultReconciliationSpec
	}
	return &WalletReconciliationJob{
		handler: handler,
		spec:    spec,
		timeout: 5 * time.Minute,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "wallet_reconciliation_job"),
	}
}

func (j *WalletReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Wallet reconciliation job started", "schedule", j.spec)
	return nil
}

// RunOnce reconciles all wallets and returns the report.
func (j *WalletReconciliationJob) RunOnce(ctx context.Context) (queries.ReconcileReport, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	report, err := j.handler.Handle(ctx, queries.NewReconcileWalletsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Wallet reconciliation failed", "error", err)
		return report, err
	}

	for _, m := range report.Mismatches {
		j.logger.ErrorContext(ctx, "Wallet balance does not match ledger",
			"walletId", m.WalletID.String(),
			"ownerId", m.OwnerID.String(),
			"ownerKind", m.OwnerKind,
			"balance", m.Balance,
			"ledger", m.Ledger,
		)
	}
	j.logger.InfoContext(ctx, "Wallet reconciliation finished", "checked", report.Checked, "mismatches", len(report.Mismatches))
	return report, nil
}

func (j *WalletReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Wallet reconciliation job stopped")
}
