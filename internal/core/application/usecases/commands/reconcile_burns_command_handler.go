package commands

import (
	"context"
	"errors"
	"time"

	"redemption/internal/core/domain/model/burn"
	"redemption/internal/core/ports"
)

// ReconcileBurnsCommandHandler settles burn runs the orchestrator could not:
// it asks the ledger what actually happened and drives each run to Completed
// or Failed.
//
// Two kinds of runs need it. An Unknown run may or may not have burned
// tokens; the ledger's answer decides. A Completed run flagged for
// reconciliation already burned tokens but its order record update failed;
// only the persist is retried, never the burn.
type ReconcileBurnsCommandHandler struct {
	uowFactory UoWFactory
	wallet     ports.WalletClient
	runs       *burn.Registry

	// notFoundGrace is how long a broadcast transaction may stay invisible
	// on the ledger before NotFound is read as "dropped" rather than
	// "not propagated yet".
	notFoundGrace time.Duration
}

// NewReconcileBurnsCommandHandler creates the reconciliation handler.
func NewReconcileBurnsCommandHandler(
	uowFactory UoWFactory,
	wallet ports.WalletClient,
	runs *burn.Registry,
	notFoundGrace time.Duration,
) ReconcileBurnsCommandHandler {
	return ReconcileBurnsCommandHandler{
		uowFactory:    uowFactory,
		wallet:        wallet,
		runs:          runs,
		notFoundGrace: notFoundGrace,
	}
}

// Handle runs one reconciliation sweep. Failures on individual runs are
// joined and returned but never stop the sweep; an unreconciled run simply
// waits for the next tick.
func (h *ReconcileBurnsCommandHandler) Handle(ctx context.Context, cmd ReconcileBurnsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var sweepErr error
	for _, run := range h.runs.NeedingReconciliation() {
		if err := h.reconcile(ctx, run); err != nil {
			sweepErr = errors.Join(sweepErr, err)
		}
	}
	return sweepErr
}

func (h *ReconcileBurnsCommandHandler) reconcile(ctx context.Context, run *burn.Run) error {
	snap := run.Snapshot()

	if snap.TransactionID == "" {
		// Nothing to poll: the transaction ID never came back. The burn
		// cannot be confirmed, so the run settles as failed.
		if snap.Stage == burn.StageUnknown {
			return run.Fail("no transaction identifier to reconcile")
		}
		return nil
	}

	state, err := h.wallet.TransactionStatus(ctx, snap.TransactionID)
	if err != nil {
		return err
	}

	switch state {
	case ports.TransactionStateConfirmed:
		return h.settleConfirmed(ctx, run, snap)

	case ports.TransactionStateFaulted:
		if snap.Stage == burn.StageUnknown {
			return run.Fail(ErrTransactionFaulted.Error())
		}
		return nil

	case ports.TransactionStateNotFound:
		if snap.Stage == burn.StageUnknown && time.Since(snap.UpdatedAt) > h.notFoundGrace {
			return run.Fail("transaction not found on the ledger")
		}
		return nil

	case ports.TransactionStatePending:
		// still settling, next sweep will see it
		return nil
	}

	return nil
}

// settleConfirmed catches the order record up with a burn the ledger
// confirms, then settles the run. completeRedemption is idempotent, so a
// record that already caught up is left alone.
func (h *ReconcileBurnsCommandHandler) settleConfirmed(ctx context.Context, run *burn.Run, snap burn.Snapshot) error {
	if err := completeRedemption(ctx, h.uowFactory, snap.OrderID, snap.TransactionID); err != nil {
		return err
	}

	if snap.Stage == burn.StageUnknown {
		if err := run.AdvanceTo(burn.StageCompleting); err != nil {
			return err
		}
		if err := run.AdvanceTo(burn.StageCompleted); err != nil {
			return err
		}
	}

	run.ClearReconciliation()
	return nil
}
