// Package audit provides the immutable transition record appended for every
// committed order status change. Records are facts: once written they are
// never updated or deleted, and per order they are retrievable in the order
// transitions actually committed.
package audit

import (
	"errors"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through the NewRecord constructor.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one immutable audit fact: which order moved from which status
// to which status, on whose behalf, when, and why.
//
// The reason field is free-form operator-supplied context (e.g. a
// cancellation reason); it is stored verbatim and never interpreted.
type Record struct {
	// orderID identifies the order the transition belongs to
	orderID kernel.UUID

	// previous is the status before the transition
	previous order.Status

	// new is the status after the transition
	new order.Status

	// actorRole is the role that triggered the transition
	actorRole kernel.Role

	// actorID identifies the acting user, nil for system-triggered transitions
	actorID *kernel.UUID

	// reason is optional free-form context supplied with the request
	reason string

	// occurredAt is the commit time of the transition
	occurredAt time.Time

	// isConstructed ensures the record was created via NewRecord
	isConstructed bool
}

// NewRecord creates an audit record for a committed transition.
// orderID, both statuses, the actor role, and the timestamp are mandatory;
// actorID and reason are optional.
func NewRecord(
	orderID kernel.UUID,
	previous, newStatus order.Status,
	actorRole kernel.Role,
	actorID *kernel.UUID,
	reason string,
	occurredAt time.Time,
) (*Record, error) {
	r := &Record{
		previous:      previous,
		new:           newStatus,
		actorRole:     actorRole,
		reason:        reason,
		occurredAt:    occurredAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		orderID.Validate(),
		previous.Validate(),
		newStatus.Validate(),
		actorRole.Validate(),
	); err != nil {
		return nil, err
	}
	r.orderID = orderID

	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
		id := *actorID
		r.actorID = &id
	}

	return r, nil
}

// Validate ensures the Record was created through NewRecord.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// OrderID returns the identifier of the order the transition belongs to.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// Previous returns the status before the transition.
func (r *Record) Previous() order.Status {
	return r.previous
}

// New returns the status after the transition.
func (r *Record) New() order.Status {
	return r.new
}

// ActorRole returns the role that triggered the transition.
func (r *Record) ActorRole() kernel.Role {
	return r.actorRole
}

// ActorID returns the acting user's identifier, or nil for system actors.
func (r *Record) ActorID() *kernel.UUID {
	return r.actorID
}

// Reason returns the optional free-form context supplied with the request.
func (r *Record) Reason() string {
	return r.reason
}

// OccurredAt returns the commit time of the transition.
func (r *Record) OccurredAt() time.Time {
	return r.occurredAt
}
