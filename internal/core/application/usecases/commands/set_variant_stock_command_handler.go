package commands

import (
	"context"
)

// SetVariantStockCommandHandler handles administrative stock overwrites.
// The record must already exist: stock records are created by combination
// recomputation, never by stock updates.
type SetVariantStockCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewSetVariantStockCommandHandler creates a handler for stock overwrites.
func NewSetVariantStockCommandHandler(uowFactory CatalogUoWFactory) SetVariantStockCommandHandler {
	return SetVariantStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stock overwrite command.
func (h *SetVariantStockCommandHandler) Handle(ctx context.Context, cmd SetVariantStockCommand) error {
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

	catalogRepo := uow.CatalogRepository()
	stock, err := catalogRepo.GetVariantStock(ctx, cmd.PhysicalItemID(), cmd.Combination())
	if err != nil {
		return err
	}

	if err = stock.SetStock(cmd.Stock()); err != nil {
		return err
	}

	if err = catalogRepo.UpdateVariantStock(ctx, stock); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
