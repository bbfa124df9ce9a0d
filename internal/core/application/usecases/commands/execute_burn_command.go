package commands

import (
	"errors"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/guard"
)

var ErrExecuteBurnCommandIsNotConstructed = errors.New(
	"ExecuteBurnCommand must be created via NewExecuteBurnCommand constructor",
)

// ExecuteBurnCommand represents a request to execute the token burn for a
// pending order: the irreversible step that turns the order's commitment
// into a completed redemption.
type ExecuteBurnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExecuteBurnCommand creates a command to burn the tokens for an order.
func NewExecuteBurnCommand(orderID kernel.UUID) (ExecuteBurnCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ExecuteBurnCommand{}, err
	}

	return ExecuteBurnCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExecuteBurnCommandIsNotConstructed if validation fails.
func (c ExecuteBurnCommand) Validate() error {
	return c.guard.Validate(ErrExecuteBurnCommandIsNotConstructed)
}

// OrderID returns the order whose tokens are burned.
func (c ExecuteBurnCommand) OrderID() kernel.UUID {
	return c.orderID
}
