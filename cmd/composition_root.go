package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"bakeshop/internal/adapters/out/calendar"
	"bakeshop/internal/adapters/out/postgres"
	"bakeshop/internal/core/application/usecases/commands"
	"bakeshop/internal/core/application/usecases/queries"
	"bakeshop/internal/core/domain/services"
	"bakeshop/internal/core/ports"
	"bakeshop/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph: database, calendar, capacity
// allocator, event publisher, and the command/query handlers over them.
// The allocator and the transition handler are singletons; both carry state
// (counters, per-order locks) that must be shared across requests.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	calendar   *calendar.Provider
	allocator  *services.CapacityAllocator
	publisher  ports.LifecycleEventPublisher
	logger     *slog.Logger

	transitionHandler *commands.RequestTransitionCommandHandler
}

// NewCompositionRoot builds the application graph from the configuration,
// an open database connection, the lifecycle event publisher, and the
// process logger.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.LifecycleEventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	provider, err := calendar.NewProvider(calendar.Config{
		OpenHour:  config.CalendarOpenHour,
		CloseHour: config.CalendarCloseHour,
		SlotLimit: config.CalendarSlotLimit,
		Holidays:  config.CalendarHolidays,
	})
	if err != nil {
		return nil, fmt.Errorf("build calendar: %w", err)
	}

	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		calendar:   provider,
		allocator:  services.NewCapacityAllocator(provider),
		publisher:  publisher,
		logger:     logger,
	}

	root.transitionHandler = commands.NewRequestTransitionCommandHandler(
		root.transitionUoWFactory(), root.allocator, root.calendar, root.publisher,
		root.logger)

	return root, nil
}

// RehydrateCapacity re-occupies the slot counters for every persisted order
// whose status holds capacity. Must run before the server starts taking
// requests, otherwise the counters would under-count and allow overbooking
// across a restart.
func (c *CompositionRoot) RehydrateCapacity(ctx context.Context) error {
	uow := c.uowFactory.Create()
	orders, err := uow.OrderRepository().GetAllHoldingCapacity(ctx)
	if err != nil {
		return fmt.Errorf("load orders holding capacity: %w", err)
	}

	for _, o := range orders {
		if _, err := c.allocator.Adopt(o.Slot(), o.ID()); err != nil {
			return fmt.Errorf("adopt reservation for order %s: %w", o.ID(), err)
		}
	}

	c.logger.InfoContext(ctx, "Capacity counters rehydrated", "orders", len(orders))
	return nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.calendar)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() *commands.RequestTransitionCommandHandler {
	return c.transitionHandler
}

func (c *CompositionRoot) CreateSetPaymentStatusCommandHandler() commands.SetPaymentStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetPaymentStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailabilityQueryHandler() queries.GetAvailabilityQueryHandler {
	return queries.NewGetAvailabilityQueryHandler(c.allocator)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// CreateJobManager builds the background job manager. The calendar refresh
// loader re-reads the static process configuration; swapping in a remote
// admin source only means replacing this closure.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	loader := func() (calendar.Config, error) {
		return calendar.Config{
			OpenHour:  c.config.CalendarOpenHour,
			CloseHour: c.config.CalendarCloseHour,
			SlotLimit: c.config.CalendarSlotLimit,
			Holidays:  c.config.CalendarHolidays,
		}, nil
	}
	return jobs.NewJobManager(c.calendar, loader, c.logger)
}

func (c *CompositionRoot) transitionUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
