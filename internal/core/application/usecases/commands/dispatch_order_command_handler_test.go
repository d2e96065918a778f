package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDispatchableOrder(t *testing.T) *order.Order {
	t.Helper()
	destination, err := kernel.NewGeoPoint(41.32, 69.25)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), 150000, 15000, &destination, nil)
	require.NoError(t, err)
	return o
}

func newOnlineCourier(t *testing.T, name string, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, "", 4.0)
	require.NoError(t, err)
	c.SetOnline()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	require.NoError(t, c.MoveTo(point))
	return c
}

func TestDispatchOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newDispatchableOrder(t)
	near := newOnlineCourier(t, "Near", 41.321, 69.251)
	far := newOnlineCourier(t, "Far", 41.40, 69.35)

	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	dispatchLog := new(MockDispatchLogRepository)
	uow := new(MockUoW)

	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DispatchLogRepository").Return(dispatchLog)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		courierRepo.On("GetAllOnline", ctx).Return([]*courier.Courier{far, near}, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.Created).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Exactly one attempt row per candidate; the winner's row carries Won.
	dispatchLog.On("Add", ctx, mock.AnythingOfType("*dispatchlog.Attempt")).Return(nil).Times(2)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, near.ID().String(), result.CourierID)
	assert.Equal(t, "Near", result.CourierName)
	assert.Positive(t, result.Score)

	require.NotNil(t, testOrder.Courier())
	assert.True(t, near.ID().IsEqual(*testOrder.Courier()))
	assert.Equal(t, order.Assigned, testOrder.Status())

	require.Len(t, dispatchLog.Calls, 2, "one attempt row per candidate")
	var won int
	for _, call := range dispatchLog.Calls {
		attempt := call.Arguments[1].(*dispatchlog.Attempt)
		assert.Equal(t, testOrder.ID(), attempt.OrderID())
		if attempt.Outcome() == dispatchlog.Won {
			won++
			assert.Equal(t, near.ID(), attempt.CourierID())
		}
	}
	assert.Equal(t, 1, won, "exactly one attempt row should mark the winner")

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	dispatchLog.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewDispatchOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
}

func TestDispatchOrderCommandHandler_Handle_OrderAlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	testOrder := newDispatchableOrder(t)
	require.NoError(t, testOrder.Assign(kernel.NewUUID()))

	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotDispatchable)
}

func TestDispatchOrderCommandHandler_Handle_NoOnlineCouriers(t *testing.T) {
	ctx := t.Context()

	testOrder := newDispatchableOrder(t)
	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		courierRepo.On("GetAllOnline", ctx).Return([]*courier.Courier{}, nil).Once(),
		courierRepo.On("Count", ctx).Return(int64(3), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoOnlineCouriers)
	assert.Equal(t, order.Created, testOrder.Status(), "order must stay queued")
}

func TestDispatchOrderCommandHandler_Handle_EmptyFleet(t *testing.T) {
	ctx := t.Context()

	testOrder := newDispatchableOrder(t)
	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		courierRepo.On("GetAllOnline", ctx).Return([]*courier.Courier{}, nil).Once(),
		courierRepo.On("Count", ctx).Return(int64(0), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoCouriers)
}

func TestDispatchOrderCommandHandler_Handle_LostAssignmentRace(t *testing.T) {
	ctx := t.Context()

	testOrder := newDispatchableOrder(t)
	candidate := newOnlineCourier(t, "Racer", 41.33, 69.26)

	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	dispatchLog := new(MockDispatchLogRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DispatchLogRepository").Return(dispatchLog)

	dispatchLog.On("Add", ctx, mock.AnythingOfType("*dispatchlog.Attempt")).Return(nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		courierRepo.On("GetAllOnline", ctx).Return([]*courier.Courier{candidate}, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.Created).
			Return(errs.NewVersionConflictError("order", testOrder.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDispatchOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewDispatchOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockDispatchUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestDispatchOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockDispatchUoWFactory)
	handler := commands.NewDispatchOrderCommandHandler(
		factory, staticWeights{services.DefaultWeights()})

	_, err := handler.Handle(ctx, commands.DispatchOrderCommand{})

	require.ErrorIs(t, err, commands.ErrDispatchOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
