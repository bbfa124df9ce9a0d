package commands

import (
	"errors"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderParams carries the optional patch fields of an order update.
// Nil fields are left untouched; a present Status requests a fulfillment
// transition and is validated against the status graph by the aggregate.
type UpdateOrderParams struct {
	// Status is the requested next fulfillment status, by wire name.
	Status *string

	// Message is the history entry message for a status change. Ignored
	// without Status; empty defaults to "Status updated to {status}".
	Message string

	// PerformedBy identifies who requested the status change. Ignored
	// without Status; empty defaults to the system actor.
	PerformedBy string

	TrackingNumber    *string
	TrackingURL       *string
	Carrier           *string
	EstimatedDelivery *time.Time
	Notes             *string

	// TransactionID attaches the burn transaction identifier. Write-once:
	// the aggregate rejects a value different from an already attached one.
	TransactionID *string
}

// UpdateOrderCommand represents a partial update of an existing order:
// an optional fulfillment status transition plus optional tracking fields.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	status      *order.Status
	message     string
	performedBy string

	trackingNumber    *string
	trackingURL       *string
	carrier           *string
	estimatedDelivery *time.Time
	notes             *string
	transactionID     *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to patch an existing order.
// A present Status must name a valid fulfillment status; whether the
// transition itself is legal is decided by the aggregate when handled.
func NewUpdateOrderCommand(orderID kernel.UUID, params UpdateOrderParams) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd := UpdateOrderCommand{
		orderID:           orderID,
		message:           params.Message,
		performedBy:       params.PerformedBy,
		trackingNumber:    params.TrackingNumber,
		trackingURL:       params.TrackingURL,
		carrier:           params.Carrier,
		estimatedDelivery: params.EstimatedDelivery,
		notes:             params.Notes,
		transactionID:     params.TransactionID,
		guard:             guard.NewConstructorGuard(),
	}

	if params.Status != nil {
		status, err := order.StatusFromString(*params.Status)
		if err != nil {
			return UpdateOrderCommand{}, err
		}
		cmd.status = &status
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderCommandIsNotConstructed if validation fails.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being patched.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested fulfillment status, or nil when the patch
// does not change the status.
func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

// Message returns the history entry message for a status change.
func (c UpdateOrderCommand) Message() string {
	return c.message
}

// PerformedBy returns who requested the status change.
func (c UpdateOrderCommand) PerformedBy() string {
	return c.performedBy
}

// TrackingNumber returns the new tracking number, or nil to leave it.
func (c UpdateOrderCommand) TrackingNumber() *string {
	return c.trackingNumber
}

// TrackingURL returns the new tracking URL, or nil to leave it.
func (c UpdateOrderCommand) TrackingURL() *string {
	return c.trackingURL
}

// Carrier returns the new carrier, or nil to leave it.
func (c UpdateOrderCommand) Carrier() *string {
	return c.carrier
}

// EstimatedDelivery returns the new delivery estimate, or nil to leave it.
func (c UpdateOrderCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

// Notes returns the new notes, or nil to leave them.
func (c UpdateOrderCommand) Notes() *string {
	return c.notes
}

// TransactionID returns the burn transaction identifier to attach, or nil
// to leave it.
func (c UpdateOrderCommand) TransactionID() *string {
	return c.transactionID
}
