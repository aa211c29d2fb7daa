package queries

import (
	"errors"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the audit trail of one order: every
// committed transition in the order it committed.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid history request: %w", err)
//	}
//
//	records, err := handler.Handle(ctx, query)
//	for _, r := range records {
//	    fmt.Printf("%s: %s -> %s by %s\n",
//	        r.OccurredAt, r.Previous, r.New, r.ActorRole)
//	}
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's transition history.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order the history belongs to.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderHistoryQueryResponse represents one audit trail entry.
type GetOrderHistoryQueryResponse struct {
	OrderID    kernel.UUID
	Previous   order.Status
	New        order.Status
	ActorRole  kernel.Role
	ActorID    *kernel.UUID
	Reason     string
	OccurredAt time.Time
}
