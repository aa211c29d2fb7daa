package commands

import (
	"errors"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents a request to move an order to a target
// lifecycle status on behalf of an actor. The reason is optional free-form
// context (e.g. why a cancellation happened) recorded verbatim in the audit
// trail.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(
//	    orderID, order.Confirmed, kernel.RoleCustomer, &actorID, "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the edge does not exist in the state graph
//	case errors.Is(err, order.ErrUnauthorized):
//	    // the actor's role is not permitted on this edge
//	case errors.Is(err, order.ErrPaymentNotConfirmed):
//	    // confirmation attempted before payment
//	case errors.Is(err, services.ErrCapacityExceeded):
//	    // the requested slot is full
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorRole kernel.Role
	actorID   *kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a command to request a status
// transition. The order ID, target status, and actor role are mandatory;
// actorID identifies the acting user (nil for system-triggered transitions)
// and reason is optional context.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	actorRole kernel.Role,
	actorID *kernel.UUID,
	reason string,
) (RequestTransitionCommand, error) {
	command := RequestTransitionCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
		command.setActorRole(actorRole),
		command.setActorID(actorID),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestTransitionCommandIsNotConstructed if validation fails.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c RequestTransitionCommand) Target() order.Status {
	return c.target
}

// ActorRole returns the role the transition is requested on behalf of.
func (c RequestTransitionCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// ActorID returns the acting user's identifier, or nil for system actors.
func (c RequestTransitionCommand) ActorID() *kernel.UUID {
	return c.actorID
}

// Reason returns the optional free-form context supplied with the request.
func (c RequestTransitionCommand) Reason() string {
	return c.reason
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *RequestTransitionCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

func (c *RequestTransitionCommand) setActorID(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	id := *actorID
	c.actorID = &id
	return nil
}
