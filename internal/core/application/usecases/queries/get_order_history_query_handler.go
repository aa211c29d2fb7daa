package queries

import (
	"context"
	"database/sql"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves an order's audit trail from the
// database. Uses direct SQL for optimal read performance in the CQRS pattern;
// records come back in insertion order, which is the order the transitions
// committed.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(orderID)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order history: %v", err)
//	    return err
//	}
//	fmt.Printf("Order went through %d transitions\n", len(history))
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's transition records.
// Returns them sorted by insertion sequence, oldest first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			previous_status,
			new_status,
			actor_role,
			actor_id,
			reason,
			occurred_at
		FROM audit_records
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetOrderHistoryQueryResponse
		var orderID uuid.UUID
		var previous, newStatus int
		var actorRole string
		var actorID *uuid.UUID
		var reason sql.NullString
		var occurredAt time.Time

		err = rows.Scan(
			&orderID,
			&previous,
			&newStatus,
			&actorRole,
			&actorID,
			&reason,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.OrderID = id

		if actorID != nil {
			aID, aErr := kernel.UUIDFromBytes((*actorID)[:])
			if aErr != nil {
				return nil, aErr
			}
			record.ActorID = &aID
		}

		record.Previous = order.Status(previous)
		record.New = order.Status(newStatus)
		record.ActorRole = kernel.Role(actorRole)
		record.Reason = reason.String
		record.OccurredAt = occurredAt

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
