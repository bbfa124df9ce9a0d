package commands

import (
	"errors"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var ErrReplaceFulfillmentHistoryCommandIsNotConstructed = errors.New(
	"ReplaceFulfillmentHistoryCommand must be created via NewReplaceFulfillmentHistoryCommand constructor",
)

// HistoryEntry is the wire-level form of one replacement history entry.
type HistoryEntry struct {
	Status      string
	Message     string
	PerformedBy string
	Timestamp   time.Time
}

// ReplaceFulfillmentHistoryCommand represents an administrative wholesale
// replacement of an order's fulfillment history. This is the only operation
// that breaks the append-only audit property, and it requires a named
// administrative actor.
type ReplaceFulfillmentHistoryCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	updates     []order.FulfillmentUpdate
	performedBy string

	guard guard.ConstructorGuard
}

// NewReplaceFulfillmentHistoryCommand creates a command to replace an order's
// history. Every entry must carry a valid status, message, actor, and
// timestamp; the aggregate additionally enforces the history invariants
// (non-empty, first entry pending, non-decreasing timestamps) when handled.
func NewReplaceFulfillmentHistoryCommand(
	orderID kernel.UUID,
	entries []HistoryEntry,
	performedBy string,
) (ReplaceFulfillmentHistoryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReplaceFulfillmentHistoryCommand{}, err
	}
	if performedBy == "" {
		return ReplaceFulfillmentHistoryCommand{}, errs.NewValueIsRequiredError("performedBy")
	}
	if len(entries) == 0 {
		return ReplaceFulfillmentHistoryCommand{}, errs.NewValueIsRequiredError("history")
	}

	updates := make([]order.FulfillmentUpdate, 0, len(entries))
	for _, e := range entries {
		status, err := order.StatusFromString(e.Status)
		if err != nil {
			return ReplaceFulfillmentHistoryCommand{}, err
		}
		update, err := order.RestoreFulfillmentUpdate(status, e.Message, e.PerformedBy, e.Timestamp)
		if err != nil {
			return ReplaceFulfillmentHistoryCommand{}, err
		}
		updates = append(updates, update)
	}

	return ReplaceFulfillmentHistoryCommand{
		orderID:     orderID,
		updates:     updates,
		performedBy: performedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReplaceFulfillmentHistoryCommandIsNotConstructed if validation fails.
func (c ReplaceFulfillmentHistoryCommand) Validate() error {
	return c.guard.Validate(ErrReplaceFulfillmentHistoryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose history is replaced.
func (c ReplaceFulfillmentHistoryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Updates returns the replacement history entries.
func (c ReplaceFulfillmentHistoryCommand) Updates() []order.FulfillmentUpdate {
	out := make([]order.FulfillmentUpdate, len(c.updates))
	copy(out, c.updates)
	return out
}

// PerformedBy returns the administrative actor requesting the replacement.
func (c ReplaceFulfillmentHistoryCommand) PerformedBy() string {
	return c.performedBy
}
