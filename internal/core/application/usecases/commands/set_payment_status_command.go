package commands

import (
	"errors"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/pkg/guard"
)

var ErrSetPaymentStatusCommandIsNotConstructed = errors.New(
	"SetPaymentStatusCommand must be created via NewSetPaymentStatusCommand constructor",
)

// SetPaymentStatusCommand represents a payment outcome reported by the
// external payment collaborator. The state machine only reads the recorded
// value as a guard on confirmation; it never initiates payment itself.
type SetPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewSetPaymentStatusCommand creates a command recording a payment outcome
// for an order.
func NewSetPaymentStatusCommand(
	orderID kernel.UUID,
	paymentStatus order.PaymentStatus,
) (SetPaymentStatusCommand, error) {
	command := SetPaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPaymentStatus(paymentStatus),
	); err != nil {
		return SetPaymentStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetPaymentStatusCommandIsNotConstructed if validation fails.
func (c SetPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the payment belongs to.
func (c SetPaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentStatus returns the reported payment outcome.
func (c SetPaymentStatusCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

func (c *SetPaymentStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetPaymentStatusCommand) setPaymentStatus(paymentStatus order.PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}

	c.paymentStatus = paymentStatus
	return nil
}
