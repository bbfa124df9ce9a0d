package catalog

import (
	"errors"
	"fmt"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var (
	// ErrVariantStockIsNotConstructed is returned when a VariantStock instance
	// was not created through NewVariantStock or RestoreVariantStock.
	ErrVariantStockIsNotConstructed = errors.New(
		"VariantStock must be created via NewVariantStock or RestoreVariantStock",
	)

	// ErrInsufficientStock is returned when a decrement would drive the stock
	// counter negative.
	ErrInsufficientStock = errors.New("insufficient stock for combination")
)

// VariantStock is the inventory counter associated with one variant
// combination of a physical item. Stock never goes negative.
type VariantStock struct {
	id             kernel.UUID
	physicalItemID int64
	combination    string
	stock          int64

	guard guard.ConstructorGuard
}

// NewVariantStock creates a stock record for a combination, starting at zero.
// Newly generated combinations always start at zero; administrators raise the
// counter explicitly through SetStock.
func NewVariantStock(id kernel.UUID, physicalItemID int64, combination string) (*VariantStock, error) {
	return RestoreVariantStock(id, physicalItemID, combination, 0)
}

// RestoreVariantStock reconstructs a stock record from persistence.
func RestoreVariantStock(id kernel.UUID, physicalItemID int64, combination string, stock int64) (*VariantStock, error) {
	s := &VariantStock{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setPhysicalItemID(physicalItemID),
		s.setCombination(combination),
		s.SetStock(stock),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the record was created through a constructor.
func (s *VariantStock) Validate() error {
	if s == nil {
		return ErrVariantStockIsNotConstructed
	}
	return s.guard.Validate(ErrVariantStockIsNotConstructed)
}

// ID returns the record's unique identifier.
func (s *VariantStock) ID() kernel.UUID {
	return s.id
}

// PhysicalItemID returns the item this counter belongs to.
func (s *VariantStock) PhysicalItemID() int64 {
	return s.physicalItemID
}

// Combination returns the variant combination string, in the
// "{Name}: {option} / ..." format produced by Combinations.
func (s *VariantStock) Combination() string {
	return s.combination
}

// Stock returns the current inventory count.
func (s *VariantStock) Stock() int64 {
	return s.stock
}

// InStock reports whether at least one unit is available.
func (s *VariantStock) InStock() bool {
	return s.stock > 0
}

// SetStock replaces the inventory count. Negative input is rejected before
// any mutation.
func (s *VariantStock) SetStock(stock int64) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	s.stock = stock
	return nil
}

// Decrement reduces the inventory count by n. Returns ErrInsufficientStock
// (wrapped in a validation error) when fewer than n units remain; the counter
// is unchanged on failure.
func (s *VariantStock) Decrement(n int64) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("decrement",
			fmt.Errorf("%d is not greater than 0", n))
	}
	if s.stock < n {
		return errs.NewValueIsInvalidErrorWithCause("stock", ErrInsufficientStock)
	}
	s.stock -= n
	return nil
}

func (s *VariantStock) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *VariantStock) setPhysicalItemID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("physicalItemId",
			fmt.Errorf("%d is not greater than 0", id))
	}
	s.physicalItemID = id
	return nil
}

func (s *VariantStock) setCombination(combination string) error {
	if combination == "" {
		return errs.NewValueIsRequiredError("combination")
	}
	s.combination = combination
	return nil
}
