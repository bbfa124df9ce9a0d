package commands

import (
	"context"
)

// RemoveVariationCommandHandler handles removing an item variation and
// recomputing the variant combination set. Orphaned stock records are
// pruned; when the removal leaves other variations, their recombined
// combinations get fresh records at zero.
type RemoveVariationCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewRemoveVariationCommandHandler creates a handler for variation removal.
func NewRemoveVariationCommandHandler(uowFactory CatalogUoWFactory) RemoveVariationCommandHandler {
	return RemoveVariationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the variation removal command.
func (h *RemoveVariationCommandHandler) Handle(ctx context.Context, cmd RemoveVariationCommand) error {
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
	if err := catalogRepo.RemoveVariation(ctx, cmd.VariationID()); err != nil {
		return err
	}

	variations, err := catalogRepo.GetVariations(ctx, cmd.PhysicalItemID())
	if err != nil {
		return err
	}

	if err = recomputeVariantStocks(ctx, catalogRepo, cmd.PhysicalItemID(), variations); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
