package commands

import (
	"context"
	"errors"
	"fmt"

	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/core/ports"
)

// ErrSlotIsNotBookable is returned when an order is placed into a slot the
// calendar reports as closed (outside business hours or on a holiday).
var ErrSlotIsNotBookable = errors.New("slot is not bookable")

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates new orders in pending status for a requested pickup slot.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, calendar)
//	cmd, _ := NewPlaceOrderCommand(orderID, customerID, slot)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now pending and awaiting payment and confirmation
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calendar   ports.BusinessCalendar
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence and the business
// calendar for placement time and slot validation.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	calendar ports.BusinessCalendar,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		calendar:   calendar,
	}
}

// Handle processes the order placement command.
// Rejects slots the calendar reports as closed, then creates the order in
// pending status. No capacity is reserved at this point; the requested slot
// is only claimed when the order is confirmed.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.calendar.SlotLimit(cmd.Slot()) <= 0 {
		return fmt.Errorf("%w: %s", ErrSlotIsNotBookable, cmd.Slot())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.Slot(), h.calendar.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
