// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the ledger wallet
// client. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for redemption order
// aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.RedemptionOrder) error

	// Update persists changes to an existing order aggregate, including
	// its full fulfillment history.
	Update(ctx context.Context, aggregate *order.RedemptionOrder) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no order has the given ID.
	Get(ctx context.Context, id kernel.UUID) (*order.RedemptionOrder, error)

	// GetByAccount retrieves all orders placed by the given account,
	// newest first.
	GetByAccount(ctx context.Context, accountID string) ([]*order.RedemptionOrder, error)

	// GetByTransaction retrieves the order carrying the given ledger
	// transaction ID, if any. Used by reconciliation to detect a burn
	// that was already recorded.
	GetByTransaction(ctx context.Context, transactionID string) (*order.RedemptionOrder, error)
}
