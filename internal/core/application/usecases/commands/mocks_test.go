package commands_test

import (
	"context"

	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.RedemptionOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.RedemptionOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.RedemptionOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RedemptionOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByAccount(ctx context.Context, accountID string) ([]*order.RedemptionOrder, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.RedemptionOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByTransaction(ctx context.Context, transactionID string) (*order.RedemptionOrder, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RedemptionOrder), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) AddVariation(ctx context.Context, v *catalog.ItemVariation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockCatalogRepository) RemoveVariation(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariations(ctx context.Context, physicalItemID int64) ([]*catalog.ItemVariation, error) {
	args := m.Called(ctx, physicalItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ItemVariation), args.Error(1)
}

func (m *MockCatalogRepository) AddVariantStock(ctx context.Context, s *catalog.VariantStock) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateVariantStock(ctx context.Context, s *catalog.VariantStock) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockCatalogRepository) RemoveVariantStock(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariantStocks(ctx context.Context, physicalItemID int64) ([]*catalog.VariantStock, error) {
	args := m.Called(ctx, physicalItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.VariantStock), args.Error(1)
}

func (m *MockCatalogRepository) GetVariantStock(ctx context.Context, physicalItemID int64, combination string) (*catalog.VariantStock, error) {
	args := m.Called(ctx, physicalItemID, combination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VariantStock), args.Error(1)
}

func (m *MockCatalogRepository) DecrementStock(ctx context.Context, physicalItemID int64, combination string, amount int64) error {
	args := m.Called(ctx, physicalItemID, combination, amount)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogUoW struct{ mock.Mock }

func (m *MockCatalogUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

type MockWalletClient struct{ mock.Mock }

func (m *MockWalletClient) QueryBalance(ctx context.Context, accountID, tokenID string) (int64, error) {
	args := m.Called(ctx, accountID, tokenID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletClient) Burn(ctx context.Context, accountID, tokenID string, amount int64) (string, error) {
	args := m.Called(ctx, accountID, tokenID, amount)
	return args.String(0), args.Error(1)
}

func (m *MockWalletClient) TransactionStatus(ctx context.Context, transactionID string) (ports.TransactionState, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(ports.TransactionState), args.Error(1)
}
