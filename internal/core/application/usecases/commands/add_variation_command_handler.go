package commands

import (
	"context"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/ports"
)

// AddVariationCommandHandler handles declaring a new item variation and
// recomputing the item's variant combination set.
//
// After the variation is stored, combinations that do not exist yet get a
// stock record at zero, and records whose combination is no longer generable
// (the pre-variation combinations) are pruned.
type AddVariationCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewAddVariationCommandHandler creates a handler for variation declaration.
func NewAddVariationCommandHandler(uowFactory CatalogUoWFactory) AddVariationCommandHandler {
	return AddVariationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the variation declaration command.
func (h *AddVariationCommandHandler) Handle(ctx context.Context, cmd AddVariationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	variation, err := catalog.NewItemVariation(cmd.VariationID(), cmd.PhysicalItemID(), cmd.Name(), cmd.Options())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()
	if err = catalogRepo.AddVariation(ctx, variation); err != nil {
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

// recomputeVariantStocks reconciles the stored stock records with the
// combinations generable from the given variations: missing combinations get
// a record at stock zero, orphaned records are removed, and records for
// still-generable combinations keep their counters untouched.
func recomputeVariantStocks(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	physicalItemID int64,
	variations []*catalog.ItemVariation,
) error {
	existing, err := catalogRepo.GetVariantStocks(ctx, physicalItemID)
	if err != nil {
		return err
	}

	for _, combination := range catalog.MissingCombinations(variations, existing) {
		stock, err := catalog.NewVariantStock(kernel.NewUUID(), physicalItemID, combination)
		if err != nil {
			return err
		}
		if err = catalogRepo.AddVariantStock(ctx, stock); err != nil {
			return err
		}
	}

	for _, orphan := range catalog.OrphanedStocks(variations, existing) {
		if err = catalogRepo.RemoveVariantStock(ctx, orphan.ID()); err != nil {
			return err
		}
	}

	return nil
}
