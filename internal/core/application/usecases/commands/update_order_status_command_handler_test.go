package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeliveringOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, nil, nil)
	require.NoError(t, err)
	require.NoError(t, aggregate.Assign(courierID))
	require.NoError(t, aggregate.TransitionTo(order.PickedUp))
	require.NoError(t, aggregate.TransitionTo(order.Delivering))
	return aggregate
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredCreditsCourier(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	testOrder := newDeliveringOrder(t, courierID)

	assignee, err := courier.NewCourier(courierID, "Bek", "", 4.0)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Delivered, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		courierRepo.On("Get", ctx, courierID).Return(assignee, nil).Once(),
		courierRepo.On("Update", ctx, assignee).Return(nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.Delivering).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.NotNil(t, testOrder.FinishedAt())
	assert.Equal(t, 1, assignee.CompletedDeliveries())

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_PaidAccruesEarnings(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	merchantID := kernel.NewUUID()

	aggregate, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, nil, &merchantID)
	require.NoError(t, err)
	require.NoError(t, aggregate.Assign(courierID))
	require.NoError(t, aggregate.TransitionTo(order.PickedUp))
	require.NoError(t, aggregate.TransitionTo(order.Delivering))
	require.NoError(t, aggregate.TransitionTo(order.Delivered))

	assignee, err := courier.NewCourier(courierID, "Bek", "", 4.0)
	require.NoError(t, err)
	seller, err := merchant.NewMerchant(merchantID, "Teashop")
	require.NoError(t, err)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Paid, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	merchantRepo := new(MockMerchantRepository)
	earningRepo := new(MockEarningRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("MerchantRepository").Return(merchantRepo)
	uow.On("EarningRepository").Return(earningRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, aggregate, order.Delivered).Return(nil).Once()

	earningRepo.On("ExistsForOrder", ctx, aggregate.ID(), earning.DeliveryFee).
		Return(false, nil).Once()
	earningRepo.On("ExistsForOrder", ctx, aggregate.ID(), earning.ProductSale).
		Return(false, nil).Once()
	earningRepo.On("Add", ctx, mock.AnythingOfType("*earning.Earning")).Return(nil).Times(2)

	courierRepo.On("Get", ctx, courierID).Return(assignee, nil).Once()
	courierRepo.On("Update", ctx, assignee).Return(nil).Once()
	merchantRepo.On("Get", ctx, merchantID).Return(seller, nil).Once()
	merchantRepo.On("Update", ctx, seller).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Paid, aggregate.Status())
	assert.InDelta(t, 15000, assignee.Balance(), 1e-9)
	assert.InDelta(t, 135000, seller.Balance(), 1e-9)

	// Each side gets exactly one earning record: the fee for the courier,
	// the remainder for the merchant.
	var feeCount, saleCount int
	for _, call := range earningRepo.Calls {
		if call.Method != "Add" {
			continue
		}
		record := call.Arguments[1].(*earning.Earning)
		switch record.Type() {
		case earning.DeliveryFee:
			feeCount++
			assert.Equal(t, courierID, record.RecipientID())
			assert.InDelta(t, 15000, record.Amount(), 1e-9)
		case earning.ProductSale:
			saleCount++
			assert.Equal(t, merchantID, record.RecipientID())
			assert.InDelta(t, 135000, record.Amount(), 1e-9)
		}
	}
	assert.Equal(t, 1, feeCount)
	assert.Equal(t, 1, saleCount)

	earningRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_PaidAccrualIsIdempotent(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	merchantID := kernel.NewUUID()

	aggregate, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, nil, &merchantID)
	require.NoError(t, err)
	require.NoError(t, aggregate.Assign(courierID))
	require.NoError(t, aggregate.TransitionTo(order.PickedUp))
	require.NoError(t, aggregate.TransitionTo(order.Delivering))
	require.NoError(t, aggregate.TransitionTo(order.Delivered))

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Paid, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	earningRepo := new(MockEarningRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("EarningRepository").Return(earningRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, aggregate, order.Delivered).Return(nil).Once()

	// Both earning rows already exist: nothing is added, no balances move.
	earningRepo.On("ExistsForOrder", ctx, aggregate.ID(), earning.DeliveryFee).
		Return(true, nil).Once()
	earningRepo.On("ExistsForOrder", ctx, aggregate.ID(), earning.ProductSale).
		Return(true, nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	require.NoError(t, handler.Handle(ctx, cmd))

	earningRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	earningRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransitionRejected(t *testing.T) {
	ctx := t.Context()

	aggregate, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, nil, nil)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Delivered, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Created, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderStatusCommandHandler_Handle_ForceBypassesGraph(t *testing.T) {
	ctx := t.Context()

	aggregate, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, nil, nil)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Completed, true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, aggregate, order.Created).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Completed, aggregate.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Cancelled, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, cmd.OrderID()).Return(nil, errs.ErrObjectNotFound).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_ConcurrentUpdateLoses(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	testOrder := newDeliveringOrder(t, courierID)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), order.Cancelled, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, testOrder, order.Delivering).
		Return(errs.NewVersionConflictError("order", testOrder.ID().String())).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, 10000)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}
