// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The slot is stored as its date and hour components; the version column
// backs optimistic-lock updates.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	SlotDate      time.Time `gorm:"index:idx_orders_slot"`
	SlotHour      int       `gorm:"type:smallint;index:idx_orders_slot"`
	Status        int       `gorm:"index"`
	PaymentStatus int
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	ReadyAt       *time.Time
	Version       int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		SlotDate:      aggregate.Slot().Date(),
		SlotHour:      aggregate.Slot().Hour(),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		CreatedAt:     aggregate.CreatedAt(),
		ConfirmedAt:   aggregate.ConfirmedAt(),
		ReadyAt:       aggregate.ReadyAt(),
		Version:       aggregate.Version(),
	}
}

// toDomain converts a database row to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle timestamps and the
// optimistic-lock version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	slot, err := kernel.NewSlot(dto.SlotDate, dto.SlotHour)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		slot,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.CreatedAt,
		dto.ConfirmedAt,
		dto.ReadyAt,
		dto.Version,
	)
}
