package commands

import (
	"context"
)

// SetPaymentStatusCommandHandler records payment outcomes on orders.
// Payment capture itself happens outside the system; this handler only
// persists the reported result so the confirmation guard can read it.
type SetPaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetPaymentStatusCommandHandler creates a handler for payment outcome
// recording. Requires an OrderUoWFactory for transactional persistence.
func NewSetPaymentStatusCommandHandler(uowFactory OrderUoWFactory) SetPaymentStatusCommandHandler {
	return SetPaymentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment outcome command.
// Loads the order, records the reported payment status, and persists the
// change. Returns an errs.ErrObjectNotFound error for unknown orders.
func (h SetPaymentStatusCommandHandler) Handle(ctx context.Context, cmd SetPaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.SetPaymentStatus(cmd.PaymentStatus()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
