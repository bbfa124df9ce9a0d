package commands_test

import (
	"context"
	"testing"
	"time"

	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/domain/model/burn"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ambiguousRun drives a fresh run to StageUnknown with the given transaction
// attached, the state an orchestrator leaves behind after a broadcast or
// confirmation failure.
func ambiguousRun(t *testing.T, runs *burn.Registry, aggregate *order.RedemptionOrder, transactionID string) *burn.Run {
	t.Helper()
	run, err := runs.Begin(aggregate.ID())
	require.NoError(t, err)
	require.NoError(t, run.AdvanceTo(burn.StagePreparing))
	require.NoError(t, run.AdvanceTo(burn.StageSigning))
	require.NoError(t, run.AdvanceTo(burn.StageBroadcasting))
	if transactionID != "" {
		require.NoError(t, run.AttachTransaction(transactionID))
	}
	require.NoError(t, run.MarkUnknown("broadcast timed out"))
	return run
}

// unpersistedRun drives a fresh run to StageCompleted with the
// reconciliation flag set, the state left behind when the burn confirmed but
// the order record update failed.
func unpersistedRun(t *testing.T, runs *burn.Registry, aggregate *order.RedemptionOrder, transactionID string) *burn.Run {
	t.Helper()
	run, err := runs.Begin(aggregate.ID())
	require.NoError(t, err)
	for _, s := range []burn.Stage{
		burn.StagePreparing, burn.StageSigning, burn.StageBroadcasting,
		burn.StageConfirming, burn.StageCompleting, burn.StageCompleted,
	} {
		require.NoError(t, run.AdvanceTo(s))
	}
	require.NoError(t, run.AttachTransaction(transactionID))
	run.MarkNeedsReconciliation("order record update failed")
	return run
}

func expectCompletion(ctx context.Context, factory *MockUoWFactory, aggregate *order.RedemptionOrder) {
	orderRepo := new(MockOrderRepository)
	catalogRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil)
	uow.On("CatalogRepository").Return(catalogRepo)
	catalogRepo.On("DecrementStock", mock.Anything, aggregate.PhysicalItemID(),
		aggregate.VariantCombination(), aggregate.Amount()).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory.On("Create").Return(uow).Once()
}

func TestReconcileBurnsCommandHandler_Handle_UnknownConfirmedCompletes(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "Size: M")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "0xTX1")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX1").Return(ports.TransactionStateConfirmed, nil)

	factory := new(MockUoWFactory)
	expectCompletion(ctx, factory, aggregate)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Minute)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	require.Equal(t, order.Completed, aggregate.Status())
	require.Equal(t, "0xTX1", aggregate.TransactionID())

	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageCompleted, snap.Stage)
	require.False(t, snap.NeedsReconciliation)
	require.Empty(t, runs.NeedingReconciliation())
}

func TestReconcileBurnsCommandHandler_Handle_UnknownFaultedFails(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "0xTX2")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX2").Return(ports.TransactionStateFaulted, nil)

	factory := new(MockUoWFactory)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Minute)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	// the order never completed and can be retried
	require.Equal(t, order.Pending, aggregate.Status())
	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageFailed, snap.Stage)

	_, err := runs.Begin(aggregate.ID())
	require.NoError(t, err)
}

func TestReconcileBurnsCommandHandler_Handle_UnpersistedRunRetriesPersistOnly(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "Size: M")
	runs := burn.NewRegistry()
	unpersistedRun(t, runs, aggregate, "0xTX3")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX3").Return(ports.TransactionStateConfirmed, nil)

	factory := new(MockUoWFactory)
	expectCompletion(ctx, factory, aggregate)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Minute)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	require.Equal(t, order.Completed, aggregate.Status())
	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageCompleted, snap.Stage)
	require.False(t, snap.NeedsReconciliation)

	// the wallet was only asked for status, never to burn again
	wallet.AssertNotCalled(t, "Burn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileBurnsCommandHandler_Handle_NotFoundWithinGraceWaits(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "0xTX4")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX4").Return(ports.TransactionStateNotFound, nil)

	factory := new(MockUoWFactory)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Hour)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	// within the grace period the run stays Unknown for the next sweep
	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageUnknown, snap.Stage)
	require.Len(t, runs.NeedingReconciliation(), 1)
}

func TestReconcileBurnsCommandHandler_Handle_NotFoundAfterGraceFails(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "0xTX5")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX5").Return(ports.TransactionStateNotFound, nil)

	factory := new(MockUoWFactory)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, 0)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageFailed, snap.Stage)
}

func TestReconcileBurnsCommandHandler_Handle_NoTransactionIDFails(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "")

	wallet := new(MockWalletClient)
	factory := new(MockUoWFactory)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Minute)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageFailed, snap.Stage)
	wallet.AssertNotCalled(t, "TransactionStatus", mock.Anything, mock.Anything)
}

func TestReconcileBurnsCommandHandler_Handle_PendingLeftForNextSweep(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	runs := burn.NewRegistry()
	ambiguousRun(t, runs, aggregate, "0xTX6")

	wallet := new(MockWalletClient)
	wallet.On("TransactionStatus", mock.Anything, "0xTX6").Return(ports.TransactionStatePending, nil)

	factory := new(MockUoWFactory)

	h := commands.NewReconcileBurnsCommandHandler(factory, wallet, runs, time.Minute)
	require.NoError(t, h.Handle(ctx, commands.NewReconcileBurnsCommand()))

	snap, _ := runs.Get(aggregate.ID())
	require.Equal(t, burn.StageUnknown, snap.Stage)
}
