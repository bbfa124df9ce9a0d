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

func strPtr(s string) *string { return &s }

func TestUpdateOrderCommandHandler_Handle_StatusTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status:      strPtr("confirmed"),
		Message:     "Payment verified",
		PerformedBy: "admin@example.com",
	})
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

	h := commands.NewUpdateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Confirmed, aggregate.Status())
	history := aggregate.FulfillmentUpdates()
	require.Len(t, history, 2)
	require.Equal(t, "Payment verified", history[1].Message())
	require.Equal(t, "admin@example.com", history[1].PerformedBy())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		Status: strPtr("delivered"),
	})
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

	h := commands.NewUpdateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.Pending, aggregate.Status())
	require.Len(t, aggregate.FulfillmentUpdates(), 1)
}

func TestUpdateOrderCommandHandler_Handle_TrackingOnlyPatch(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	eta := time.Now().UTC().Add(72 * time.Hour)
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		TrackingNumber:    strPtr("1Z999AA10123456784"),
		TrackingURL:       strPtr("https://tracking.example.com/1Z999AA10123456784"),
		Carrier:           strPtr("UPS"),
		EstimatedDelivery: &eta,
		Notes:             strPtr("Leave at the door"),
	})
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

	h := commands.NewUpdateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, "1Z999AA10123456784", aggregate.TrackingNumber())
	require.Equal(t, "UPS", aggregate.Carrier())
	require.Equal(t, "Leave at the door", aggregate.Notes())
	require.Equal(t, eta, aggregate.EstimatedDelivery())
	// no status change, history untouched
	require.Len(t, aggregate.FulfillmentUpdates(), 1)
}

func TestUpdateOrderCommandHandler_Handle_AttachesTransaction(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		TransactionID: strPtr("0xCAFE"),
	})
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

	h := commands.NewUpdateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, "0xCAFE", aggregate.TransactionID())
}

func TestUpdateOrderCommandHandler_Handle_TransactionIsWriteOnce(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, "")
	require.NoError(t, aggregate.AttachTransaction("0xCAFE"))
	cmd, err := commands.NewUpdateOrderCommand(aggregate.ID(), commands.UpdateOrderParams{
		TransactionID: strPtr("0xBEEF"),
	})
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

	h := commands.NewUpdateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrTransactionAlreadyAttached)
	require.Equal(t, "0xCAFE", aggregate.TransactionID())
}

func TestUpdateOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderCommand(orderID, commands.UpdateOrderParams{
		Notes: strPtr("whatever"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewUpdateOrderCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), commands.UpdateOrderParams{
		Status: strPtr("teleported"),
	})
	require.Error(t, err)
}
