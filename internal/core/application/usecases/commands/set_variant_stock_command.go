package commands

import (
	"errors"

	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrSetVariantStockCommandIsNotConstructed = errors.New(
	"SetVariantStockCommand must be created via NewSetVariantStockCommand constructor",
)

// SetVariantStockCommand represents an administrative overwrite of one
// variant combination's stock counter.
type SetVariantStockCommand struct { //nolint:recvcheck //using for validation
	physicalItemID int64
	combination    string
	stock          int64

	guard guard.ConstructorGuard
}

// NewSetVariantStockCommand creates a command to set a combination's stock.
// Stock must be zero or positive.
func NewSetVariantStockCommand(physicalItemID int64, combination string, stock int64) (SetVariantStockCommand, error) {
	if physicalItemID <= 0 {
		return SetVariantStockCommand{}, errs.NewValueIsInvalidError("physicalItemId")
	}
	if combination == "" {
		return SetVariantStockCommand{}, errs.NewValueIsRequiredError("combination")
	}
	if stock < 0 {
		return SetVariantStockCommand{}, errs.NewValueIsInvalidError("stock")
	}

	return SetVariantStockCommand{
		physicalItemID: physicalItemID,
		combination:    combination,
		stock:          stock,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetVariantStockCommandIsNotConstructed if validation fails.
func (c SetVariantStockCommand) Validate() error {
	return c.guard.Validate(ErrSetVariantStockCommandIsNotConstructed)
}

// PhysicalItemID returns the item the combination belongs to.
func (c SetVariantStockCommand) PhysicalItemID() int64 {
	return c.physicalItemID
}

// Combination returns the variant combination whose stock is set.
func (c SetVariantStockCommand) Combination() string {
	return c.combination
}

// Stock returns the new stock value.
func (c SetVariantStockCommand) Stock() int64 {
	return c.stock
}
