package ports

import (
	"context"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check: the stored row must still carry the
	// version the aggregate was loaded with. A stale version is reported
	// as an errs.ErrVersionIsInvalid error so callers can reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// A missing order is reported as an errs.ErrObjectNotFound error.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllHoldingCapacity retrieves all orders whose status currently
	// occupies a slot reservation (confirmed, in progress, or ready).
	// Used to rebuild the capacity counters at startup.
	GetAllHoldingCapacity(ctx context.Context) ([]*order.Order, error)
}
