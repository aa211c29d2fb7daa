package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"bakeshop/internal/adapters/out/postgres/orderrepo"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.True(loaded.CustomerID().IsEqual(testOrder.CustomerID()))
	suite.True(loaded.Slot().IsEqual(testOrder.Slot()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.PaymentUnset, loaded.PaymentStatus())
	suite.Nil(loaded.ConfirmedAt())
	suite.Nil(loaded.ReadyAt())
	suite.Equal(0, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndAdvancesVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.SetPaymentStatus(order.PaymentPaid))

	now := time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)
	_, err = loaded.Transition(order.Confirmed, kernel.RoleCustomer, now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, reloaded.Status())
	suite.Equal(order.PaymentPaid, reloaded.PaymentStatus())
	suite.Require().NotNil(reloaded.ConfirmedAt())
	suite.True(reloaded.ConfirmedAt().Equal(now))
	suite.Equal(1, reloaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// A first writer advances the row.
	winner, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.SetPaymentStatus(order.PaymentPaid))
	suite.Require().NoError(suite.repository.Update(ctx, winner))

	// The stale copy still carries the old version and must lose.
	suite.Require().NoError(stale.SetPaymentStatus(order.PaymentFailed))
	err = suite.repository.Update(ctx, stale)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, reloaded.PaymentStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllHoldingCapacity_FiltersByStatus() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	holding := map[order.Status]bool{
		order.Confirmed:  true,
		order.InProgress: true,
		order.Ready:      true,
	}

	statuses := []order.Status{
		order.Pending, order.Confirmed, order.InProgress,
		order.Ready, order.Completed, order.Cancelled,
	}
	for _, status := range statuses {
		suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrderWithStatus(status)))
	}

	orders, err := suite.repository.GetAllHoldingCapacity(ctx)
	suite.Require().NoError(err)
	suite.Len(orders, 3)
	for _, o := range orders {
		suite.True(holding[o.Status()], "unexpected status %s", o.Status())
		suite.True(o.HoldsCapacity())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	slot, err := kernel.NewSlot(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 14)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), slot,
		time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithStatus(
	status order.Status,
) *order.Order {
	slot, err := kernel.NewSlot(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 14)
	suite.Require().NoError(err)

	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	var confirmedAt *time.Time
	if status != order.Pending {
		ts := created.Add(time.Hour)
		confirmedAt = &ts
	}

	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), slot,
		status, order.PaymentPaid, created, confirmedAt, nil, 0)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
