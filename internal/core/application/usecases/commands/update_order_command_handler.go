package commands

import (
	"context"
)

// UpdateOrderCommandHandler handles partial updates of existing orders.
// Status changes go through the aggregate's fulfillment graph and append to
// the audit history; tracking fields are plain overwrites.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order update command.
// An illegal status transition leaves the order unmodified and surfaces as
// an *errs.InvalidTransitionError.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if cmd.Status() != nil {
		if err = aggregate.ApplyUpdate(*cmd.Status(), cmd.Message(), cmd.PerformedBy()); err != nil {
			return err
		}
	}

	if v := cmd.TrackingNumber(); v != nil {
		aggregate.SetTrackingNumber(*v)
	}
	if v := cmd.TrackingURL(); v != nil {
		aggregate.SetTrackingURL(*v)
	}
	if v := cmd.Carrier(); v != nil {
		aggregate.SetCarrier(*v)
	}
	if v := cmd.EstimatedDelivery(); v != nil {
		aggregate.SetEstimatedDelivery(*v)
	}
	if v := cmd.Notes(); v != nil {
		aggregate.SetNotes(*v)
	}
	if v := cmd.TransactionID(); v != nil {
		if err = aggregate.AttachTransaction(*v); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
