package memory

import (
	"context"
	"fmt"
	"sync"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
)

// CatalogRepository is an in-memory implementation of ports.CatalogRepository.
// Insertion order is preserved so GetVariations and GetVariantStocks return
// records in declaration and generation order, matching the postgres adapter.
type CatalogRepository struct {
	mu         *sync.Mutex
	variations []*catalog.ItemVariation
	stocks     []*catalog.VariantStock
}

// AddVariation saves a new variation.
func (r *CatalogRepository) AddVariation(_ context.Context, variation *catalog.ItemVariation) error {
	if err := variation.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.variations = append(r.variations, variation)
	return nil
}

// RemoveVariation deletes a variation by ID.
func (r *CatalogRepository) RemoveVariation(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, v := range r.variations {
		if v.ID().IsEqual(id) {
			r.variations = append(r.variations[:i], r.variations[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("variation", id.String())
}

// GetVariations retrieves an item's variations in declaration order.
func (r *CatalogRepository) GetVariations(_ context.Context, physicalItemID int64) ([]*catalog.ItemVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	variations := make([]*catalog.ItemVariation, 0)
	for _, v := range r.variations {
		if v.PhysicalItemID() == physicalItemID {
			variations = append(variations, v)
		}
	}

	return variations, nil
}

// AddVariantStock saves a new stock record. A duplicate combination for the
// same item is rejected, matching the unique index in postgres.
func (r *CatalogRepository) AddVariantStock(_ context.Context, stock *catalog.VariantStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stocks {
		if s.PhysicalItemID() == stock.PhysicalItemID() && s.Combination() == stock.Combination() {
			return errs.NewValueIsInvalidErrorWithCause("combination",
				fmt.Errorf("stock record for %q already exists", stock.Combination()))
		}
	}

	r.stocks = append(r.stocks, stock)
	return nil
}

// UpdateVariantStock saves a changed stock counter.
func (r *CatalogRepository) UpdateVariantStock(_ context.Context, stock *catalog.VariantStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.stocks {
		if s.ID().IsEqual(stock.ID()) {
			r.stocks[i] = stock
			return nil
		}
	}

	return errs.NewObjectNotFoundError("variantStock", stock.ID().String())
}

// RemoveVariantStock deletes a stock record by ID.
func (r *CatalogRepository) RemoveVariantStock(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.stocks {
		if s.ID().IsEqual(id) {
			r.stocks = append(r.stocks[:i], r.stocks[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("variantStock", id.String())
}

// GetVariantStocks retrieves all stock records for an item in generation order.
func (r *CatalogRepository) GetVariantStocks(_ context.Context, physicalItemID int64) ([]*catalog.VariantStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stocks := make([]*catalog.VariantStock, 0)
	for _, s := range r.stocks {
		if s.PhysicalItemID() == physicalItemID {
			stocks = append(stocks, s)
		}
	}

	return stocks, nil
}

// GetVariantStock retrieves the stock record for one combination.
func (r *CatalogRepository) GetVariantStock(
	_ context.Context,
	physicalItemID int64,
	combination string,
) (*catalog.VariantStock, error) {
	if combination == "" {
		return nil, errs.NewValueIsRequiredError("combination")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stocks {
		if s.PhysicalItemID() == physicalItemID && s.Combination() == combination {
			return s, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("variantStock", combination)
}

// DecrementStock subtracts amount from a combination's counter. The check and
// the write happen under the repository mutex so concurrent redemptions of the
// last unit cannot both succeed.
func (r *CatalogRepository) DecrementStock(
	_ context.Context,
	physicalItemID int64,
	combination string,
	amount int64,
) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stocks {
		if s.PhysicalItemID() == physicalItemID && s.Combination() == combination {
			return s.Decrement(amount)
		}
	}

	return errs.NewValueIsInvalidErrorWithCause("stock", catalog.ErrInsufficientStock)
}
