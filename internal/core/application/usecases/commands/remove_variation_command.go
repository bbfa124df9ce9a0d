package commands

import (
	"errors"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrRemoveVariationCommandIsNotConstructed = errors.New(
	"RemoveVariationCommand must be created via NewRemoveVariationCommand constructor",
)

// RemoveVariationCommand represents a request to remove an item variation.
// Removal shrinks the combination set; stock records for combinations that
// are no longer generable are pruned along with it.
type RemoveVariationCommand struct { //nolint:recvcheck //using for validation
	variationID    kernel.UUID
	physicalItemID int64

	guard guard.ConstructorGuard
}

// NewRemoveVariationCommand creates a command to remove a variation.
func NewRemoveVariationCommand(variationID kernel.UUID, physicalItemID int64) (RemoveVariationCommand, error) {
	if err := variationID.Validate(); err != nil {
		return RemoveVariationCommand{}, err
	}
	if physicalItemID <= 0 {
		return RemoveVariationCommand{}, errs.NewValueIsInvalidError("physicalItemId")
	}

	return RemoveVariationCommand{
		variationID:    variationID,
		physicalItemID: physicalItemID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveVariationCommandIsNotConstructed if validation fails.
func (c RemoveVariationCommand) Validate() error {
	return c.guard.Validate(ErrRemoveVariationCommandIsNotConstructed)
}

// VariationID returns the identifier of the variation to remove.
func (c RemoveVariationCommand) VariationID() kernel.UUID {
	return c.variationID
}

// PhysicalItemID returns the item the variation belongs to.
func (c RemoveVariationCommand) PhysicalItemID() int64 {
	return c.physicalItemID
}
