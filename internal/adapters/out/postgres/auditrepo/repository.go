package auditrepo

import (
	"context"

	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
// The repository is insert-only; records are never updated or deleted.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists one transition record. When the repository was obtained
// from a unit of work the insert joins the transaction of the order update it
// describes.
func (r *GormAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder retrieves all records for an order, oldest first.
// Insertion order equals the order the transitions committed.
func (r *GormAuditRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*audit.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*audit.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
