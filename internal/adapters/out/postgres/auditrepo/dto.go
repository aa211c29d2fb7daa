// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail. Rows are only ever inserted; the serial
// primary key preserves per-order commit order.
package auditrepo

import (
	"time"

	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting transition
// records. The autoincrement ID doubles as the per-order ordering key.
type RecordDTO struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index"`
	PreviousStatus int        `gorm:"type:smallint"`
	NewStatus      int        `gorm:"type:smallint"`
	ActorRole      string     `gorm:"type:varchar(16)"`
	ActorID        *uuid.UUID `gorm:"type:uuid"`
	Reason         string
	OccurredAt     time.Time
}

// TableName specifies the database table name for audit records.
func (RecordDTO) TableName() string {
	return "audit_records"
}

// fromDomain converts a transition record to its database representation.
func fromDomain(record *audit.Record) RecordDTO {
	var actorID *uuid.UUID
	if id := record.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return RecordDTO{
		OrderID:        record.OrderID().Bytes(),
		PreviousStatus: int(record.Previous()),
		NewStatus:      int(record.New()),
		ActorRole:      record.ActorRole().String(),
		ActorID:        actorID,
		Reason:         record.Reason(),
		OccurredAt:     record.OccurredAt(),
	}
}

// toDomain converts a database row to a transition record.
func toDomain(dto RecordDTO) (*audit.Record, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	return audit.NewRecord(
		orderID,
		order.Status(dto.PreviousStatus),
		order.Status(dto.NewStatus),
		kernel.Role(dto.ActorRole),
		actorID,
		dto.Reason,
		dto.OccurredAt,
	)
}
