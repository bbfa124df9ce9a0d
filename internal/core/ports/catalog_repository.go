package ports

import (
	"context"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for item variations and
// their per-combination stock records.
type CatalogRepository interface {
	// AddVariation persists a new variation for a physical item.
	AddVariation(ctx context.Context, variation *catalog.ItemVariation) error

	// RemoveVariation deletes a variation by ID.
	// Returns errs.ObjectNotFoundError when the variation does not exist.
	RemoveVariation(ctx context.Context, id kernel.UUID) error

	// GetVariations retrieves an item's variations in declaration order.
	GetVariations(ctx context.Context, physicalItemID int64) ([]*catalog.ItemVariation, error)

	// AddVariantStock persists a new stock record for a combination.
	AddVariantStock(ctx context.Context, stock *catalog.VariantStock) error

	// UpdateVariantStock persists a changed stock counter.
	UpdateVariantStock(ctx context.Context, stock *catalog.VariantStock) error

	// RemoveVariantStock deletes a stock record by ID. Used to prune
	// records orphaned by a variation removal.
	RemoveVariantStock(ctx context.Context, id kernel.UUID) error

	// GetVariantStocks retrieves all stock records for an item.
	GetVariantStocks(ctx context.Context, physicalItemID int64) ([]*catalog.VariantStock, error)

	// GetVariantStock retrieves the stock record for one combination.
	// Returns errs.ObjectNotFoundError when no record exists for it.
	GetVariantStock(ctx context.Context, physicalItemID int64, combination string) (*catalog.VariantStock, error)

	// DecrementStock atomically subtracts amount from a combination's
	// counter, refusing to go below zero. The check and the write happen
	// in a single statement so concurrent redemptions of the last unit
	// cannot both succeed.
	DecrementStock(ctx context.Context, physicalItemID int64, combination string, amount int64) error
}
