package order

import (
	"errors"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrPaymentNotConfirmed is returned when a transition into Confirmed is
	// attempted before the payment collaborator has reported the order as paid.
	ErrPaymentNotConfirmed = errors.New("payment is not confirmed")
)

// Order represents a customized customer order in the system. It is the aggregate root
// that manages the order lifecycle from placement through production to pickup.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer identifier
//   - Must have a valid requested slot, immutable after placement
//   - Status transitions follow the state graph defined by Status
//   - Status is mutated only through Transition, never directly
//   - PaymentStatus is written by the payment collaborator and only read
//     by the state machine as a guard
//   - Can only be created through NewOrder or RestoreOrder
//
// Capacity reservation and release are side effects of Confirmed/Cancelled
// transitions and are owned by the capacity allocator; the aggregate only
// reports whether its current status holds a reservation.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// slot is the requested pickup slot; immutable after placement
	slot kernel.Slot

	// status represents the current state in the order lifecycle
	status Status

	// paymentStatus is the payment outcome reported by the payment collaborator
	paymentStatus PaymentStatus

	// createdAt is stamped once, when the order is placed
	createdAt time.Time

	// confirmedAt is stamped once, by the transition entering Confirmed
	confirmedAt *time.Time

	// readyAt is stamped once, by the transition entering Ready
	readyAt *time.Time

	// version supports optimistic-lock updates in persistence
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// TransitionResult describes the outcome of a committed (or no-op) transition.
type TransitionResult struct {
	// Previous is the status before the transition.
	Previous Status

	// New is the status after the transition. Equal to Previous for no-ops.
	New Status

	// NoOp is true when the requested target equalled the current status,
	// so nothing changed and no side effects apply.
	NoOp bool
}

// NewOrder creates a new Order in Pending status with an unset payment.
// This is the only way to place a valid order; all invariants are checked.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: Identifier of the placing customer (must be valid UUID)
//   - slot: Requested pickup slot (must be constructed)
//   - now: Placement time, stamped as createdAt
func NewOrder(id, customerID kernel.UUID, slot kernel.Slot, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentUnset,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setSlot(slot),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage.
// Unlike NewOrder, this accepts any valid status and the timestamps recorded
// at persistence time. The restored order behaves identically to one that
// reached the same state through domain operations.
func RestoreOrder(
	id, customerID kernel.UUID,
	slot kernel.Slot,
	status Status,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	confirmedAt, readyAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		status:        status,
		paymentStatus: paymentStatus,
		createdAt:     createdAt,
		confirmedAt:   confirmedAt,
		readyAt:       readyAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setSlot(slot),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("orderVersion")
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Slot returns the order's requested pickup slot.
func (o *Order) Slot() kernel.Slot {
	return o.slot
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment outcome last reported for the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ConfirmedAt returns the timestamp of the transition into Confirmed.
// Returns nil if the order was never confirmed.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// ReadyAt returns the timestamp of the transition into Ready.
// Returns nil if the order never reached Ready.
func (o *Order) ReadyAt() *time.Time {
	return o.readyAt
}

// Version returns the optimistic-lock version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// HoldsCapacity reports whether the order currently occupies a unit of its
// slot's capacity. Used to release the reservation on cancellation and to
// re-occupy counters when rehydrating the allocator at startup.
func (o *Order) HoldsCapacity() bool {
	return o.status.HoldsCapacity()
}

// TimeToReady returns the elapsed time between confirmation and readiness.
// The second return value is false until both timestamps are stamped.
// This is a derived observability value, not an invariant-bearing field.
func (o *Order) TimeToReady() (time.Duration, bool) {
	if o.confirmedAt == nil || o.readyAt == nil {
		return 0, false
	}
	return o.readyAt.Sub(*o.confirmedAt), true
}

// SetPaymentStatus records the payment outcome reported by the external
// payment collaborator. The state machine never calls this itself; it only
// reads the value as a guard on the Pending -> Confirmed edge.
func (o *Order) SetPaymentStatus(p PaymentStatus) error {
	if err := p.Validate(); err != nil {
		return err
	}

	o.paymentStatus = p
	return nil
}

// Transition attempts to move the order to the target status on behalf of
// the given role, stamping lifecycle timestamps as edges are taken.
//
// Rules enforced, in order:
//  1. target must be a valid status and role a valid role
//  2. target == current status is an idempotent no-op success
//  3. the edge must exist in the state graph (ErrInvalidTransition)
//  4. the role must be permitted on the edge (ErrUnauthorized)
//  5. entering Confirmed requires paymentStatus == PaymentPaid
//     (ErrPaymentNotConfirmed)
//
// On success the status is updated and confirmedAt/readyAt are stamped
// exactly once by the edges entering Confirmed and Ready respectively.
// On any failure the order is left completely unchanged.
//
// Capacity reservation/release is intentionally not performed here: the
// application layer coordinates the allocator so that a failed reservation
// can veto the transition before this method is called to commit it.
func (o *Order) Transition(target Status, role kernel.Role, now time.Time) (TransitionResult, error) {
	if err := errors.Join(target.Validate(), role.Validate()); err != nil {
		return TransitionResult{}, err
	}

	if target == o.status {
		return TransitionResult{Previous: o.status, New: o.status, NoOp: true}, nil
	}

	if err := o.status.AuthorizeTransition(target, role); err != nil {
		return TransitionResult{}, err
	}

	if target == Confirmed && o.paymentStatus != PaymentPaid {
		return TransitionResult{}, ErrPaymentNotConfirmed
	}

	previous := o.status
	o.status = target

	stamp := now.UTC()
	switch target { //nolint:exhaustive // only Confirmed and Ready stamp timestamps
	case Confirmed:
		if o.confirmedAt == nil {
			o.confirmedAt = &stamp
		}
	case Ready:
		if o.readyAt == nil {
			o.readyAt = &stamp
		}
	}

	return TransitionResult{Previous: previous, New: target}, nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the placing customer's identifier.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setSlot validates and sets the order's requested slot.
// This is a private method used only during construction.
func (o *Order) setSlot(slot kernel.Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	o.slot = slot
	return nil
}
