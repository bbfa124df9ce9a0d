package commands_test

import (
	"testing"
	"time"

	"redemption/internal/core/application/usecases/commands"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func replacementEntries(base time.Time) []commands.HistoryEntry {
	return []commands.HistoryEntry{
		{Status: "pending", Message: "Order received", PerformedBy: "system", Timestamp: base},
		{Status: "confirmed", Message: "Corrected by support", PerformedBy: "admin@example.com", Timestamp: base.Add(time.Minute)},
	}
}

func TestReplaceFulfillmentHistoryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	cmd, err := commands.NewReplaceFulfillmentHistoryCommand(
		aggregate.ID(), replacementEntries(aggregate.CreatedAt()), "admin@example.com")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReplaceFulfillmentHistoryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Confirmed, aggregate.Status())
	history := aggregate.FulfillmentUpdates()
	require.Len(t, history, 2)
	require.Equal(t, "Corrected by support", history[1].Message())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReplaceFulfillmentHistoryCommandHandler_Handle_SystemActorRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	cmd, err := commands.NewReplaceFulfillmentHistoryCommand(
		aggregate.ID(), replacementEntries(aggregate.CreatedAt()), order.SystemActor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReplaceFulfillmentHistoryCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Len(t, aggregate.FulfillmentUpdates(), 1)
}

func TestNewReplaceFulfillmentHistoryCommand_Validation(t *testing.T) {
	base := time.Now().UTC()

	t.Run("rejects empty history", func(t *testing.T) {
		_, err := commands.NewReplaceFulfillmentHistoryCommand(kernel.NewUUID(), nil, "admin")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects missing actor", func(t *testing.T) {
		_, err := commands.NewReplaceFulfillmentHistoryCommand(kernel.NewUUID(), replacementEntries(base), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown status names", func(t *testing.T) {
		entries := []commands.HistoryEntry{
			{Status: "warp", Message: "m", PerformedBy: "admin", Timestamp: base},
		}
		_, err := commands.NewReplaceFulfillmentHistoryCommand(kernel.NewUUID(), entries, "admin")
		require.Error(t, err)
	})

	t.Run("rejects entries without timestamps", func(t *testing.T) {
		entries := []commands.HistoryEntry{
			{Status: "pending", Message: "m", PerformedBy: "admin"},
		}
		_, err := commands.NewReplaceFulfillmentHistoryCommand(kernel.NewUUID(), entries, "admin")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
