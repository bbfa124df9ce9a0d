package commands

import (
	"context"
	"errors"
	"time"

	"redemption/internal/core/domain/model/burn"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/core/ports"
	"redemption/internal/pkg/errs"
)

var (
	// ErrInsufficientBalance indicates the account holds fewer tokens than
	// the order commits to burn.
	ErrInsufficientBalance = errors.New("account balance is lower than the burn amount")

	// ErrTransactionFaulted indicates the burn transaction was included on
	// the ledger but its execution faulted: no tokens were burned and the
	// order may be retried.
	ErrTransactionFaulted = errors.New("burn transaction faulted on the ledger")

	// ErrConfirmationTimedOut indicates the transaction was broadcast but
	// confirmation polling gave up before the ledger settled it.
	ErrConfirmationTimedOut = errors.New("timed out waiting for burn confirmation")

	// ErrBurnPendingReconciliation indicates the burn itself succeeded but
	// the order record could not be updated. The tokens are burned; the
	// reconciliation job will catch the record up. The order must not be
	// burned again.
	ErrBurnPendingReconciliation = errors.New(
		"burn confirmed but the order record is not updated yet, reconciliation pending")
)

// BurnStageObserver receives a notification each time a burn run reaches a
// new stage. Observers must not block.
type BurnStageObserver func(orderID kernel.UUID, stage burn.Stage)

// ExecuteBurnCommandHandler orchestrates the multi-stage token burn.
//
// The order of operations is fixed: re-validate the order and balance, sign,
// broadcast, poll for confirmation, then persist the completed order and
// decrement variant stock in one transaction. Failure classification is the
// heart of the handler: anything before broadcast fails clean and is
// retryable, anything at or after broadcast that cannot be confirmed settles
// as Unknown and is handed to reconciliation instead of being retried.
type ExecuteBurnCommandHandler struct {
	uowFactory      UoWFactory
	wallet          ports.WalletClient
	runs            *burn.Registry
	confirmAttempts int
	confirmInterval time.Duration
	observers       []BurnStageObserver
}

// NewExecuteBurnCommandHandler creates the burn orchestrator.
//
// confirmAttempts and confirmInterval bound the confirmation polling loop;
// observers are notified of every stage change, in order.
func NewExecuteBurnCommandHandler(
	uowFactory UoWFactory,
	wallet ports.WalletClient,
	runs *burn.Registry,
	confirmAttempts int,
	confirmInterval time.Duration,
	observers ...BurnStageObserver,
) ExecuteBurnCommandHandler {
	return ExecuteBurnCommandHandler{
		uowFactory:      uowFactory,
		wallet:          wallet,
		runs:            runs,
		confirmAttempts: confirmAttempts,
		confirmInterval: confirmInterval,
		observers:       observers,
	}
}

// Handle executes the burn for the order and returns the ledger transaction
// ID on success.
//
// Error contract:
//   - burn.ErrRunInFlight, burn.ErrRunRequiresReconciliation,
//     burn.ErrRunAlreadyCompleted: single-flight policy refused the attempt
//   - ErrInsufficientBalance, ErrTransactionFaulted, or a pre-broadcast
//     *errs.ExternalCallError: clean failure, retry is safe
//   - an ambiguous *errs.ExternalCallError (Ambiguous() true): outcome
//     unknown, reconciliation required before any retry
//   - ErrBurnPendingReconciliation: tokens burned, record catching up; the
//     returned transaction ID is valid
func (h *ExecuteBurnCommandHandler) Handle(ctx context.Context, cmd ExecuteBurnCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	aggregate, err := h.loadBurnableOrder(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	run, err := h.runs.Begin(cmd.OrderID())
	if err != nil {
		return "", err
	}

	if err = h.advance(run, burn.StagePreparing); err != nil {
		return "", err
	}

	balance, err := h.wallet.QueryBalance(ctx, aggregate.AccountID(), aggregate.TokenID())
	if err != nil {
		_ = run.Fail(err.Error())
		return "", err
	}
	if balance < aggregate.Amount() {
		_ = run.Fail(ErrInsufficientBalance.Error())
		return "", ErrInsufficientBalance
	}

	if err = h.advance(run, burn.StageSigning); err != nil {
		return "", err
	}

	transactionID, err := h.wallet.Burn(ctx, aggregate.AccountID(), aggregate.TokenID(), aggregate.Amount())
	if err != nil {
		return "", h.settleBurnCallFailure(run, err)
	}

	if err = h.advance(run, burn.StageBroadcasting); err != nil {
		return "", err
	}
	if err = run.AttachTransaction(transactionID); err != nil {
		return "", err
	}
	if err = h.advance(run, burn.StageConfirming); err != nil {
		return "", err
	}

	if err = h.awaitConfirmation(ctx, run, transactionID); err != nil {
		return "", err
	}

	if err = h.advance(run, burn.StageCompleting); err != nil {
		return "", err
	}

	if err = completeRedemption(ctx, h.uowFactory, cmd.OrderID(), transactionID); err != nil {
		// The tokens are burned; only the bookkeeping is behind. Report
		// the burn as done and leave the record to reconciliation.
		_ = h.advance(run, burn.StageCompleted)
		run.MarkNeedsReconciliation(err.Error())
		return transactionID, ErrBurnPendingReconciliation
	}

	if err = h.advance(run, burn.StageCompleted); err != nil {
		return "", err
	}

	return transactionID, nil
}

// loadBurnableOrder fetches the order in a short read transaction and checks
// the burn preconditions: status pending and no transaction attached yet.
func (h *ExecuteBurnCommandHandler) loadBurnableOrder(ctx context.Context, orderID kernel.UUID) (*order.RedemptionOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if aggregate.TransactionID() != "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", order.ErrTransactionAlreadyAttached)
	}
	if aggregate.Status() != order.Pending {
		return nil, errs.NewInvalidTransitionError(aggregate.Status().String(), order.Completed.String())
	}

	return aggregate, nil
}

// settleBurnCallFailure classifies a failed wallet Burn call. Signing
// failures never reached the network and settle as a clean Failed; broadcast
// failures may have reached it and settle as Unknown, carrying the locally
// derived transaction ID for reconciliation when the wallet knows it.
func (h *ExecuteBurnCommandHandler) settleBurnCallFailure(run *burn.Run, err error) error {
	var callErr *errs.ExternalCallError
	if errors.As(err, &callErr) && callErr.Ambiguous() {
		_ = h.advance(run, burn.StageBroadcasting)
		if callErr.TransactionID != "" {
			_ = run.AttachTransaction(callErr.TransactionID)
		}
		_ = run.MarkUnknown(err.Error())
		h.notify(run.OrderID(), burn.StageUnknown)
		return err
	}

	_ = run.Fail(err.Error())
	h.notify(run.OrderID(), burn.StageFailed)
	return err
}

// awaitConfirmation polls the ledger until the transaction confirms, faults,
// or the attempt budget runs out. Cancellation mid-poll is ambiguous: the
// transaction is already out.
func (h *ExecuteBurnCommandHandler) awaitConfirmation(ctx context.Context, run *burn.Run, transactionID string) error {
	for attempt := 0; attempt < h.confirmAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = run.MarkUnknown("canceled while awaiting confirmation")
				h.notify(run.OrderID(), burn.StageUnknown)
				return errs.NewExternalCallErrorWithTransaction(
					"burn", errs.PhaseConfirm, transactionID, ctx.Err())
			case <-time.After(h.confirmInterval):
			}
		}

		state, err := h.wallet.TransactionStatus(ctx, transactionID)
		if err != nil {
			continue
		}

		switch state {
		case ports.TransactionStateConfirmed:
			return nil
		case ports.TransactionStateFaulted:
			_ = run.Fail(ErrTransactionFaulted.Error())
			h.notify(run.OrderID(), burn.StageFailed)
			return ErrTransactionFaulted
		case ports.TransactionStatePending, ports.TransactionStateNotFound:
			// keep polling; a fresh broadcast may not be visible yet
		}
	}

	_ = run.MarkUnknown(ErrConfirmationTimedOut.Error())
	h.notify(run.OrderID(), burn.StageUnknown)
	return errs.NewExternalCallErrorWithTransaction(
		"burn", errs.PhaseConfirm, transactionID, ErrConfirmationTimedOut)
}

// advance moves the run one stage forward and notifies observers.
func (h *ExecuteBurnCommandHandler) advance(run *burn.Run, stage burn.Stage) error {
	if err := run.AdvanceTo(stage); err != nil {
		return err
	}
	h.notify(run.OrderID(), stage)
	return nil
}

func (h *ExecuteBurnCommandHandler) notify(orderID kernel.UUID, stage burn.Stage) {
	for _, observe := range h.observers {
		observe(orderID, stage)
	}
}

// completeRedemption persists a confirmed burn: completed status, transaction
// ID, and the variant stock decrement, all in one transaction. It is
// idempotent for the same transaction ID so reconciliation can re-apply a
// completion whose first attempt failed without double-decrementing stock.
func completeRedemption(ctx context.Context, uowFactory UoWFactory, orderID kernel.UUID, transactionID string) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	alreadyRecorded := aggregate.TransactionID() == transactionID && aggregate.Status() == order.Completed

	if err = aggregate.CompleteBurn(transactionID); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if !alreadyRecorded && aggregate.VariantCombination() != "" {
		err = uow.CatalogRepository().DecrementStock(
			ctx, aggregate.PhysicalItemID(), aggregate.VariantCombination(), aggregate.Amount())
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
