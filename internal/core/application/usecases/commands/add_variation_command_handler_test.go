package commands_test

import (
	"testing"

	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddVariationCommandHandler_Handle_FirstVariation(t *testing.T) {
	ctx := t.Context()
	variationID := kernel.NewUUID()
	cmd, err := commands.NewAddVariationCommand(variationID, 1, "Size", []string{"S", "M"})
	require.NoError(t, err)

	size := testVariation(t, 1, "Size", "S", "M")

	var created []string

	catalogRepo := new(MockCatalogRepository)
	uow := new(MockCatalogUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CatalogRepository").Return(catalogRepo)
	catalogRepo.On("AddVariation", mock.Anything, mock.AnythingOfType("*catalog.ItemVariation")).Return(nil)
	catalogRepo.On("GetVariations", mock.Anything, int64(1)).Return([]*catalog.ItemVariation{size}, nil)
	catalogRepo.On("GetVariantStocks", mock.Anything, int64(1)).Return([]*catalog.VariantStock{}, nil)
	catalogRepo.On("AddVariantStock", mock.Anything, mock.AnythingOfType("*catalog.VariantStock")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*catalog.VariantStock).Combination())
		}).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockCatalogUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewAddVariationCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, []string{"Size: S", "Size: M"}, created)
	catalogRepo.AssertExpectations(t)
}

func TestAddVariationCommandHandler_Handle_SecondVariationPrunesOldRecords(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddVariationCommand(kernel.NewUUID(), 1, "Color", []string{"Red", "Blue"})
	require.NoError(t, err)

	size := testVariation(t, 1, "Size", "S", "M")
	color := testVariation(t, 1, "Color", "Red", "Blue")

	// records from before Color existed; their combinations are no longer
	// generable and must be pruned
	oldS := testStock(t, 1, "Size: S", 7)
	oldM := testStock(t, 1, "Size: M", 3)

	var created []string
	var removed []kernel.UUID

	catalogRepo := new(MockCatalogRepository)
	uow := new(MockCatalogUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CatalogRepository").Return(catalogRepo)
	catalogRepo.On("AddVariation", mock.Anything, mock.AnythingOfType("*catalog.ItemVariation")).Return(nil)
	catalogRepo.On("GetVariations", mock.Anything, int64(1)).Return([]*catalog.ItemVariation{size, color}, nil)
	catalogRepo.On("GetVariantStocks", mock.Anything, int64(1)).Return([]*catalog.VariantStock{oldS, oldM}, nil)
	catalogRepo.On("AddVariantStock", mock.Anything, mock.AnythingOfType("*catalog.VariantStock")).
		Run(func(args mock.Arguments) {
			stock := args.Get(1).(*catalog.VariantStock)
			require.Zero(t, stock.Stock())
			created = append(created, stock.Combination())
		}).Return(nil)
	catalogRepo.On("RemoveVariantStock", mock.Anything, mock.AnythingOfType("kernel.UUID")).
		Run(func(args mock.Arguments) {
			removed = append(removed, args.Get(1).(kernel.UUID))
		}).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockCatalogUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewAddVariationCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, []string{
		"Size: S / Color: Red",
		"Size: S / Color: Blue",
		"Size: M / Color: Red",
		"Size: M / Color: Blue",
	}, created)
	require.ElementsMatch(t, []kernel.UUID{oldS.ID(), oldM.ID()}, removed)
}

func TestAddVariationCommandHandler_Handle_RecomputeIsIdempotent(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAddVariationCommand(kernel.NewUUID(), 1, "Size", []string{"S", "M"})
	require.NoError(t, err)

	size := testVariation(t, 1, "Size", "S", "M")
	existing := []*catalog.VariantStock{
		testStock(t, 1, "Size: S", 7),
		testStock(t, 1, "Size: M", 3),
	}

	catalogRepo := new(MockCatalogRepository)
	uow := new(MockCatalogUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CatalogRepository").Return(catalogRepo)
	catalogRepo.On("AddVariation", mock.Anything, mock.AnythingOfType("*catalog.ItemVariation")).Return(nil)
	catalogRepo.On("GetVariations", mock.Anything, int64(1)).Return([]*catalog.ItemVariation{size}, nil)
	catalogRepo.On("GetVariantStocks", mock.Anything, int64(1)).Return(existing, nil)
	// no AddVariantStock, no RemoveVariantStock: counters stay untouched
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockCatalogUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewAddVariationCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	catalogRepo.AssertNotCalled(t, "AddVariantStock", mock.Anything, mock.Anything)
	catalogRepo.AssertNotCalled(t, "RemoveVariantStock", mock.Anything, mock.Anything)
}

func TestNewAddVariationCommand_Validation(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := commands.NewAddVariationCommand(kernel.NewUUID(), 1, "", []string{"S"})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects empty options", func(t *testing.T) {
		_, err := commands.NewAddVariationCommand(kernel.NewUUID(), 1, "Size", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive item", func(t *testing.T) {
		_, err := commands.NewAddVariationCommand(kernel.NewUUID(), 0, "Size", []string{"S"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
