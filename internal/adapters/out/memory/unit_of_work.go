package memory

import (
	"context"
	"sync"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/core/ports"
)

// UnitOfWorkFactory creates UnitOfWork instances backed by one shared
// in-memory store. All unit of work instances created by the same factory
// see the same data.
type UnitOfWorkFactory struct {
	mu     sync.Mutex
	orders *OrderRepository
	stocks *CatalogRepository
}

// NewUnitOfWorkFactory creates a factory with an empty backing store.
func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	f := &UnitOfWorkFactory{}
	f.orders = &OrderRepository{
		mu:     &f.mu,
		orders: make(map[kernel.UUID]*order.RedemptionOrder),
	}
	f.stocks = &CatalogRepository{
		mu:         &f.mu,
		variations: make([]*catalog.ItemVariation, 0),
		stocks:     make([]*catalog.VariantStock, 0),
	}
	return f
}

// Create produces a new UnitOfWork over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{factory: f}
}

// UnitOfWork is a trivial unit of work over the in-memory store. Begin,
// Commit and Rollback are no-ops: writes are visible immediately and cannot
// be undone.
type UnitOfWork struct {
	factory *UnitOfWorkFactory
}

// Begin is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	return nil
}

// Commit is a no-op.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	return nil
}

// Rollback is a no-op. Changes made through the repositories are already
// visible and are not undone.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	return nil
}

// OrderRepository provides access to the shared in-memory order store.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return uow.factory.orders
}

// CatalogRepository provides access to the shared in-memory variant
// inventory store.
func (uow *UnitOfWork) CatalogRepository() ports.CatalogRepository {
	return uow.factory.stocks
}
