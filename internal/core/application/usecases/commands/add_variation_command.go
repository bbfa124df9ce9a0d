package commands

import (
	"errors"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrAddVariationCommandIsNotConstructed = errors.New(
	"AddVariationCommand must be created via NewAddVariationCommand constructor",
)

// AddVariationCommand represents a request to declare a new variation for a
// physical item, e.g. Size with options S, M, L.
type AddVariationCommand struct { //nolint:recvcheck //using for validation
	variationID    kernel.UUID
	physicalItemID int64
	name           string
	options        []string

	guard guard.ConstructorGuard
}

// NewAddVariationCommand creates a command to declare an item variation.
// The variation constructor enforces the option rules (non-empty, distinct
// labels) when the command is handled.
func NewAddVariationCommand(
	variationID kernel.UUID,
	physicalItemID int64,
	name string,
	options []string,
) (AddVariationCommand, error) {
	if err := variationID.Validate(); err != nil {
		return AddVariationCommand{}, err
	}
	if physicalItemID <= 0 {
		return AddVariationCommand{}, errs.NewValueIsInvalidError("physicalItemId")
	}
	if name == "" {
		return AddVariationCommand{}, errs.NewValueIsRequiredError("name")
	}
	if len(options) == 0 {
		return AddVariationCommand{}, errs.NewValueIsRequiredError("options")
	}

	copied := make([]string, len(options))
	copy(copied, options)

	return AddVariationCommand{
		variationID:    variationID,
		physicalItemID: physicalItemID,
		name:           name,
		options:        copied,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddVariationCommandIsNotConstructed if validation fails.
func (c AddVariationCommand) Validate() error {
	return c.guard.Validate(ErrAddVariationCommandIsNotConstructed)
}

// VariationID returns the identifier for the new variation.
func (c AddVariationCommand) VariationID() kernel.UUID {
	return c.variationID
}

// PhysicalItemID returns the item the variation belongs to.
func (c AddVariationCommand) PhysicalItemID() int64 {
	return c.physicalItemID
}

// Name returns the variation name.
func (c AddVariationCommand) Name() string {
	return c.name
}

// Options returns the variation's option labels.
func (c AddVariationCommand) Options() []string {
	out := make([]string, len(c.options))
	copy(out, c.options)
	return out
}
