package commands

import (
	"context"
)

// ReplaceFulfillmentHistoryCommandHandler handles administrative history
// replacement. The aggregate re-checks every history invariant and refuses
// the system actor, so a bad replacement never reaches storage.
type ReplaceFulfillmentHistoryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReplaceFulfillmentHistoryCommandHandler creates a handler for history
// replacement operations.
func NewReplaceFulfillmentHistoryCommandHandler(uowFactory OrderUoWFactory) ReplaceFulfillmentHistoryCommandHandler {
	return ReplaceFulfillmentHistoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the history replacement command.
func (h *ReplaceFulfillmentHistoryCommandHandler) Handle(ctx context.Context, cmd ReplaceFulfillmentHistoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ReplaceHistory(cmd.Updates(), cmd.PerformedBy()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
