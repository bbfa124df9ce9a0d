package jobs

import (
	"context"
	"log/slog"

	"redemption/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BurnReconciliationJob periodically settles burn runs the orchestrator could
// not: ambiguous runs whose transaction may or may not have landed, and
// completed burns whose order record update failed.
type BurnReconciliationJob struct {
	handler commands.ReconcileBurnsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBurnReconciliationJob creates a new job for reconciling burn runs.
// Uses ReconcileBurnsCommandHandler to sweep unsettled runs every 15 seconds.
func NewBurnReconciliationJob(handler commands.ReconcileBurnsCommandHandler, logger *slog.Logger) *BurnReconciliationJob {
	return &BurnReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "burn_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every 15 seconds.
func (j *BurnReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileBurnsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An unreconciled run waits for the next sweep; the error is
			// logged so a persistently unreachable ledger is visible.
			j.logger.ErrorContext(ctx, "Burn reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Burn reconciliation job started (running every 15 seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *BurnReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Burn reconciliation job stopped")
}
