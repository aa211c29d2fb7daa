package commands_test

import (
	"context"
	"time"

	"bakeshop/internal/core/application/usecases/commands"
	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/core/ports"

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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllHoldingCapacity(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*audit.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Record), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

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

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishTransition(ctx context.Context, event ports.TransitionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// stubCalendar is open all day with a uniform per-slot limit.
type stubCalendar struct {
	limit int
	now   time.Time
}

func (c *stubCalendar) Now() time.Time {
	if c.now.IsZero() {
		return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	}
	return c.now
}

func (c *stubCalendar) SlotLimit(_ kernel.Slot) int { return c.limit }

func (c *stubCalendar) DaySlots(date time.Time) []kernel.Slot {
	slots := make([]kernel.Slot, 0, 24)
	for hour := range 24 {
		slot, _ := kernel.NewSlot(date, hour)
		slots = append(slots, slot)
	}
	return slots
}

func testSlot() kernel.Slot {
	slot, _ := kernel.NewSlot(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 14)
	return slot
}
