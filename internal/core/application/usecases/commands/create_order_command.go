package commands

import (
	"errors"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new redemption order.
// Encapsulates the burn commitment (account, token, amount), the redeemed
// item with its optional variant selection, and the shipping snapshot.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	shipping, err := order.NewShippingInfo("Alice", "1 Main St", "", "Springfield", "12345", "US")
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewCreateOrderCommand(orderID, "NacctABC", "GAS", 42, 5, "Size: M / Color: Red", shipping)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	accountID          string
	tokenID            string
	physicalItemID     int64
	amount             int64
	variantCombination string
	shipping           order.ShippingInfo

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new redemption order.
// Validates that the order ID is valid, account and token are set, item and
// amount are positive, and the shipping snapshot was constructed. The variant
// combination may be empty; whether one is required depends on the item's
// variations and is checked by the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	accountID string,
	tokenID string,
	physicalItemID int64,
	amount int64,
	variantCombination string,
	shipping order.ShippingInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		variantCombination: variantCombination,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAccountID(accountID),
		cmd.setTokenID(tokenID),
		cmd.setPhysicalItemID(physicalItemID),
		cmd.setAmount(amount),
		cmd.setShipping(shipping),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AccountID returns the ledger account that will burn the tokens.
func (c CreateOrderCommand) AccountID() string {
	return c.accountID
}

// TokenID returns the token to burn.
func (c CreateOrderCommand) TokenID() string {
	return c.tokenID
}

// PhysicalItemID returns the redeemed item's reference.
func (c CreateOrderCommand) PhysicalItemID() int64 {
	return c.physicalItemID
}

// Amount returns the token quantity committed to the burn.
func (c CreateOrderCommand) Amount() int64 {
	return c.amount
}

// VariantCombination returns the selected variant combination, or "".
func (c CreateOrderCommand) VariantCombination() string {
	return c.variantCombination
}

// Shipping returns the shipping snapshot for the order.
func (c CreateOrderCommand) Shipping() order.ShippingInfo {
	return c.shipping
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountId")
	}
	c.accountID = accountID
	return nil
}

func (c *CreateOrderCommand) setTokenID(tokenID string) error {
	if tokenID == "" {
		return errs.NewValueIsRequiredError("tokenId")
	}
	c.tokenID = tokenID
	return nil
}

func (c *CreateOrderCommand) setPhysicalItemID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidError("physicalItemId")
	}
	c.physicalItemID = id
	return nil
}

func (c *CreateOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	c.amount = amount
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping order.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	c.shipping = shipping
	return nil
}
