package queries_test

import (
	"context"
	"testing"
	"time"

	"bakeshop/internal/adapters/out/postgres/auditrepo"
	"bakeshop/internal/core/application/usecases/queries"
	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderHistoryQueryHandler
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&auditrepo.RecordDTO{}))

	suite.handler = queries.NewGetOrderHistoryQueryHandler(db)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE audit_records").Error)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_NoRecords_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_ReturnsRecordsInCommitOrder() {
	ctx := context.Background()
	repo := auditrepo.NewGormAuditRepository(suite.db)
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	base := time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)

	steps := []struct {
		previous order.Status
		next     order.Status
		role     kernel.Role
		actorID  *kernel.UUID
		reason   string
	}{
		{order.Pending, order.Confirmed, kernel.RoleCustomer, &actorID, "prepaid"},
		{order.Confirmed, order.InProgress, kernel.RoleStaff, nil, ""},
		{order.InProgress, order.Cancelled, kernel.RoleAdmin, nil, "oven failure"},
	}
	for i, step := range steps {
		record, err := audit.NewRecord(
			orderID, step.previous, step.next, step.role,
			step.actorID, step.reason, base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Append(ctx, record))
	}

	// Another order's trail must not leak in.
	other, err := audit.NewRecord(
		kernel.NewUUID(), order.Pending, order.Confirmed,
		kernel.RoleCustomer, nil, "", base)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Append(ctx, other))

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, len(steps))

	for i, entry := range result {
		suite.True(entry.OrderID.IsEqual(orderID))
		suite.Equal(steps[i].previous, entry.Previous)
		suite.Equal(steps[i].next, entry.New)
		suite.Equal(steps[i].role, entry.ActorRole)
		suite.Equal(steps[i].reason, entry.Reason)
		if steps[i].actorID == nil {
			suite.Nil(entry.ActorID)
		} else {
			suite.Require().NotNil(entry.ActorID)
			suite.True(entry.ActorID.IsEqual(*steps[i].actorID))
		}
	}
}

func TestGetOrderHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderHistoryQueryHandlerTestSuite))
}
