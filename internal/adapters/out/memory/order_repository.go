// Package memory provides mutex-guarded in-memory implementations of the
// persistence ports. The adapter satisfies the same repository and unit of
// work contracts as the postgres adapter, which makes it a drop-in backing
// store for tests and local development.
//
// Transactions are not simulated: Commit and Rollback are no-ops and every
// write is visible immediately. Callers that need real transactional
// semantics must use the postgres adapter.
package memory

import (
	"context"
	"sort"
	"sync"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"
)

// OrderRepository is an in-memory implementation of ports.OrderRepository.
type OrderRepository struct {
	mu     *sync.Mutex
	orders map[kernel.UUID]*order.RedemptionOrder
}

// Add saves a new order. A duplicate identifier is rejected.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.RedemptionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("orderId")
	}

	r.orders[aggregate.ID()] = aggregate
	return nil
}

// Update saves an existing order.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.RedemptionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[aggregate.ID()]; !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.orders[aggregate.ID()] = aggregate
	return nil
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.RedemptionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	aggregate, exists := r.orders[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return aggregate, nil
}

// GetByAccount retrieves all orders placed by the given account, newest first.
func (r *OrderRepository) GetByAccount(_ context.Context, accountID string) ([]*order.RedemptionOrder, error) {
	if accountID == "" {
		return nil, errs.NewValueIsRequiredError("accountId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*order.RedemptionOrder, 0)
	for _, aggregate := range r.orders {
		if aggregate.AccountID() == accountID {
			orders = append(orders, aggregate)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})

	return orders, nil
}

// GetByTransaction retrieves the order carrying the given ledger transaction
// ID, if any.
func (r *OrderRepository) GetByTransaction(_ context.Context, transactionID string) (*order.RedemptionOrder, error) {
	if transactionID == "" {
		return nil, errs.NewValueIsRequiredError("transactionId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, aggregate := range r.orders {
		if aggregate.TransactionID() == transactionID {
			return aggregate, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("order", transactionID)
}
