package cmd

import (
	"redemption/internal/adapters/out/neoledger"
	"redemption/internal/adapters/out/postgres"
	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/application/usecases/queries"
	"redemption/internal/core/domain/model/burn"
	"redemption/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	wallet     ports.WalletClient
	runs       *burn.Registry
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		wallet:     neoledger.NewClient(config.LedgerRPCURL, config.LedgerTimeout),
		runs:       burn.NewRegistry(),
	}
}

// BurnRuns returns the burn run registry shared between the burn orchestrator,
// the reconciliation handler, and the progress endpoint.
func (c *CompositionRoot) BurnRuns() *burn.Registry {
	return c.runs
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReplaceFulfillmentHistoryCommandHandler() commands.ReplaceFulfillmentHistoryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReplaceFulfillmentHistoryCommandHandler(f)
}

func (c *CompositionRoot) CreateAddVariationCommandHandler() commands.AddVariationCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddVariationCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveVariationCommandHandler() commands.RemoveVariationCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveVariationCommandHandler(f)
}

func (c *CompositionRoot) CreateSetVariantStockCommandHandler() commands.SetVariantStockCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetVariantStockCommandHandler(f)
}

func (c *CompositionRoot) CreateExecuteBurnCommandHandler() commands.ExecuteBurnCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewExecuteBurnCommandHandler(
		f, c.wallet, c.runs, c.config.ConfirmAttempts, c.config.ConfirmInterval)
}

func (c *CompositionRoot) CreateReconcileBurnsCommandHandler() commands.ReconcileBurnsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileBurnsCommandHandler(f, c.wallet, c.runs, c.config.NotFoundGrace)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetItemVariantsQueryHandler() queries.GetItemVariantsQueryHandler {
	return queries.NewGetItemVariantsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
