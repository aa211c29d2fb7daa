package ports

import (
	"context"

	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
)

// AuditRepository defines the append-only persistence contract for
// transition records. Implementations must never update or delete an
// existing record.
//
// Durability rule: the append for a transition must commit in the same
// transaction as the order status change it describes, so no transition is
// ever applied without a discoverable audit trace.
type AuditRepository interface {
	// Append persists one transition record.
	Append(ctx context.Context, record *audit.Record) error

	// ListByOrder retrieves all records for an order in the sequence the
	// transitions actually committed.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Record, error)
}
