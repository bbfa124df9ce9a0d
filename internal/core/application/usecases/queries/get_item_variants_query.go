package queries

import (
	"errors"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrGetItemVariantsQueryIsNotConstructed = errors.New(
	"GetItemVariantsQuery must be created via NewGetItemVariantsQuery constructor",
)

// GetItemVariantsQuery retrieves a physical item's variations and the stock
// of every variant combination. Used by the admin surface to inspect and
// manage inventory.
type GetItemVariantsQuery struct {
	physicalItemID int64

	guard guard.ConstructorGuard
}

// NewGetItemVariantsQuery creates a query for an item's variant inventory.
func NewGetItemVariantsQuery(physicalItemID int64) (GetItemVariantsQuery, error) {
	if physicalItemID <= 0 {
		return GetItemVariantsQuery{}, errs.NewValueIsInvalidError("physicalItemId")
	}
	return GetItemVariantsQuery{
		physicalItemID: physicalItemID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetItemVariantsQueryIsNotConstructed if validation fails.
func (q GetItemVariantsQuery) Validate() error {
	return q.guard.Validate(ErrGetItemVariantsQueryIsNotConstructed)
}

// PhysicalItemID returns the item whose inventory is fetched.
func (q GetItemVariantsQuery) PhysicalItemID() int64 {
	return q.physicalItemID
}

// VariationResponse is one declared variation in a query response.
type VariationResponse struct {
	ID      kernel.UUID
	Name    string
	Options []string
}

// VariantStockResponse is one variant combination's stock counter.
type VariantStockResponse struct {
	ID          kernel.UUID
	Combination string
	Stock       int64
}

// GetItemVariantsQueryResponse represents an item's variant inventory:
// the declared variations in declaration order and the stock records of all
// live combinations.
type GetItemVariantsQueryResponse struct {
	PhysicalItemID int64
	Variations     []VariationResponse
	Stocks         []VariantStockResponse
}
