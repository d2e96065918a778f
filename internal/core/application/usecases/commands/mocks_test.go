package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/paymentlog"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateInStatus(
	ctx context.Context, o *order.Order, expected order.Status,
) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllOnline(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMerchantRepository struct{ mock.Mock }

func (m *MockMerchantRepository) Add(ctx context.Context, mc *merchant.Merchant) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMerchantRepository) Update(ctx context.Context, mc *merchant.Merchant) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMerchantRepository) Get(ctx context.Context, id kernel.UUID) (*merchant.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merchant.Merchant), args.Error(1)
}

type MockEarningRepository struct{ mock.Mock }

func (m *MockEarningRepository) Add(ctx context.Context, e *earning.Earning) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEarningRepository) ExistsForOrder(
	ctx context.Context, orderID kernel.UUID, typ earning.Type,
) (bool, error) {
	args := m.Called(ctx, orderID, typ)
	return args.Bool(0), args.Error(1)
}

type MockDispatchLogRepository struct{ mock.Mock }

func (m *MockDispatchLogRepository) Add(ctx context.Context, a *dispatchlog.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockDispatchLogRepository) CountForOrder(
	ctx context.Context, orderID kernel.UUID,
) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentLogRepository struct{ mock.Mock }

func (m *MockPaymentLogRepository) Add(ctx context.Context, e *paymentlog.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW implements every repo accessor so a single mock type serves all
// unit of work shapes the handlers declare.
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

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) MerchantRepository() ports.MerchantRepository {
	args := m.Called()
	return args.Get(0).(ports.MerchantRepository)
}

func (m *MockUoW) EarningRepository() ports.EarningRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningRepository)
}

func (m *MockUoW) DispatchLogRepository() ports.DispatchLogRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchLogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockMerchantUoWFactory struct{ mock.Mock }

func (m *MockMerchantUoWFactory) Create() commands.MerchantUoW {
	args := m.Called()
	return args.Get(0).(commands.MerchantUoW)
}

type MockReleaseUoWFactory struct{ mock.Mock }

func (m *MockReleaseUoWFactory) Create() commands.ReleaseUoW {
	args := m.Called()
	return args.Get(0).(commands.ReleaseUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

// staticWeights is a trivial ports.WeightsProvider for handler tests.
type staticWeights struct {
	weights services.Weights
}

func (s staticWeights) Weights() services.Weights {
	return s.weights
}
