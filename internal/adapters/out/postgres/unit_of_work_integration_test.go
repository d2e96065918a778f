package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/dispatchlogrepo"
	"dispatch/internal/adapters/out/postgres/earningrepo"
	"dispatch/internal/adapters/out/postgres/merchantrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&merchantrepo.MerchantDTO{},
		&earningrepo.EarningDTO{},
		&dispatchlogrepo.AttemptDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, couriers, merchants, earnings, dispatch_attempts").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates isolated unit of
// work instances with access to every repository.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow1.MerchantRepository())
	suite.NotNil(uow1.EarningRepository())
	suite.NotNil(uow1.DispatchLogRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Multiple begin calls are safe.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionErrors verifies commit/rollback without an
// active transaction fail cleanly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_AssignmentWorkflow runs the dispatch write set in one
// transaction: the assigned order, the attempt audit rows, and verifies the
// commit makes all of them visible.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testCourier := createTestCourier(suite.T())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Assign(testCourier.ID()))
	suite.Require().NoError(uow.OrderRepository().UpdateInStatus(ctx, testOrder, order.Created))

	suite.Require().NoError(uow.Commit(ctx))

	// Verify through a fresh unit of work.
	verify := suite.factory.Create()
	persisted, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, persisted.Status())
	suite.Require().NotNil(persisted.Courier())
	suite.True(testCourier.ID().IsEqual(*persisted.Courier()))
}

// TestUnitOfWork_TransactionRollback verifies rolled back writes leave no
// rows behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count, "Rolled back order should not be persisted")
}

// TestUnitOfWork_EarningUniquePerOrderAndType verifies the storage half of
// the accrual idempotency invariant: the second earning of the same type for
// the same order is rejected by the unique index.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_EarningUniquePerOrderAndType() {
	ctx := context.Background()
	uow := suite.factory.Create()

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	first, err := earning.NewEarning(kernel.NewUUID(), orderID, courierID, earning.DeliveryFee, 15000)
	suite.Require().NoError(err)
	duplicate, err := earning.NewEarning(kernel.NewUUID(), orderID, courierID, earning.DeliveryFee, 15000)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.EarningRepository().Add(ctx, first))

	exists, err := uow.EarningRepository().ExistsForOrder(ctx, orderID, earning.DeliveryFee)
	suite.Require().NoError(err)
	suite.True(exists)

	err = uow.EarningRepository().Add(ctx, duplicate)
	suite.Require().Error(err, "Unique index on (order_id, type) should reject the duplicate")
	suite.Require().NoError(uow.Rollback(ctx))
}

// TestUnitOfWork_WithoutTransaction verifies repositories work directly on
// the main connection when no transaction was begun.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCourier := createTestCourier(suite.T())
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))

	persisted, err := uow.CourierRepository().Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal(testCourier.ID(), persisted.ID())
}

func createTestOrder(t *testing.T) *order.Order {
	destination, err := kernel.NewGeoPoint(41.31, 69.28)
	if err != nil {
		t.Fatal(err)
	}

	o, err := order.NewOrder(kernel.NewUUID(), 120000, 12000, &destination, nil)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func createTestCourier(t *testing.T) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), "Test Courier", "+998901112233", 4.5)
	if err != nil {
		t.Fatal(err)
	}
	c.SetOnline()
	return c
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
