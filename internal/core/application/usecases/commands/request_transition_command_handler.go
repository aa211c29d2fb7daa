package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bakeshop/internal/core/domain/model/audit"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/core/domain/services"
	"bakeshop/internal/core/ports"
	"bakeshop/internal/pkg/errs"
)

// maxTransitionAttempts bounds the reload-and-retry loop on optimistic-lock
// conflicts. Conflicts from callers in this process are already excluded by
// the per-order lock, so retries only absorb writes from other processes.
const maxTransitionAttempts = 3

// RequestTransitionCommandHandler orchestrates order status transitions.
// It serializes work per order, lets the aggregate enforce the state graph
// and role rules, coordinates the capacity allocator on the confirm and
// cancel edges, and commits the audit record in the same transaction as the
// status change. The lifecycle event is published after the commit and never
// affects the outcome.
//
// Concurrency model: requests against the same order are serialized through
// a keyed lock; requests against different orders proceed in parallel and
// only meet inside the allocator's per-slot counters.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	allocator  *services.CapacityAllocator
	calendar   ports.BusinessCalendar
	publisher  ports.LifecycleEventPublisher
	logger     *slog.Logger

	orderLocks sync.Map // order ID -> *sync.Mutex
}

// NewRequestTransitionCommandHandler creates a handler for transition
// operations. Requires a UoWFactory spanning the order and audit
// repositories, the capacity allocator, the business calendar, the
// lifecycle event publisher, and a logger for the attempt trail.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	allocator *services.CapacityAllocator,
	calendar ports.BusinessCalendar,
	publisher ports.LifecycleEventPublisher,
	logger *slog.Logger,
) *RequestTransitionCommandHandler {
	return &RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		calendar:   calendar,
		publisher:  publisher,
		logger:     logger.With("component", "transition_handler"),
	}
}

// Handle processes a transition request and returns the committed outcome.
//
// A no-op request (target equals the current status) succeeds without
// persisting, auditing, publishing, or touching capacity. Optimistic-lock
// conflicts with writers in other processes are retried a bounded number of
// times; the conflict never surfaces as a distinct error category.
func (h *RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (order.TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return order.TransitionResult{}, err
	}

	lock := h.lockOrder(cmd.OrderID())
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for range maxTransitionAttempts {
		result, err := h.transitionOnce(ctx, cmd)
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			lastErr = err
			continue
		}
		if err != nil {
			h.logRejected(ctx, cmd, err)
		}
		return result, err
	}

	// Version conflicts are implementation-internal resilience; once the
	// retry budget is spent they surface as a plain failure, never as a
	// distinct conflict error kind.
	h.logRejected(ctx, cmd, lastErr)
	return order.TransitionResult{}, fmt.Errorf(
		"transition for order %s was not committed after %d attempts under concurrent updates",
		cmd.OrderID(), maxTransitionAttempts)
}

// logRejected records a rejected transition attempt. Rejections are not
// state changes and never reach the append-only audit store; the log line
// carries what was attempted, by whom, and the reason it failed.
func (h *RequestTransitionCommandHandler) logRejected(
	ctx context.Context,
	cmd RequestTransitionCommand,
	err error,
) {
	h.logger.WarnContext(ctx, "transition rejected",
		"orderID", cmd.OrderID().String(),
		"target", cmd.Target().String(),
		"actorRole", cmd.ActorRole().String(),
		"reason", err.Error())
}

// transitionOnce runs a single load-transition-commit attempt.
func (h *RequestTransitionCommandHandler) transitionOnce(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (order.TransitionResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.TransitionResult{}, err
	}

	now := h.calendar.Now()
	result, err := aggregate.Transition(cmd.Target(), cmd.ActorRole(), now)
	if err != nil {
		return order.TransitionResult{}, err
	}
	if result.NoOp {
		return result, nil
	}

	// Entering Confirmed claims one unit of the slot before anything is
	// persisted; a full slot vetoes the transition with no state change.
	var reservation *services.Reservation
	if result.New == order.Confirmed {
		reservation, err = h.allocator.Reserve(aggregate.Slot(), aggregate.ID())
		if err != nil {
			return order.TransitionResult{}, err
		}
	}

	if err = h.commit(ctx, uow, cmd, aggregate, result, now); err != nil {
		// Return the unit claimed above so a failed commit cannot leak
		// capacity.
		if reservation != nil {
			_ = h.allocator.Release(reservation)
		}
		return order.TransitionResult{}, err
	}

	if result.New == order.Cancelled && result.Previous.HoldsCapacity() {
		if err = h.allocator.ReleaseOwner(aggregate.ID()); err != nil {
			h.logger.WarnContext(ctx, "capacity release failed after cancellation",
				"orderID", aggregate.ID().String(), "error", err)
		}
	}

	h.publish(ctx, aggregate.ID(), result, now)

	return result, nil
}

// commit persists the status change and its audit record atomically.
func (h *RequestTransitionCommandHandler) commit(
	ctx context.Context,
	uow UoW,
	cmd RequestTransitionCommand,
	aggregate *order.Order,
	result order.TransitionResult,
	now time.Time,
) error {
	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	record, err := audit.NewRecord(
		aggregate.ID(),
		result.Previous,
		result.New,
		cmd.ActorRole(),
		cmd.ActorID(),
		cmd.Reason(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// publish emits the lifecycle event for a committed transition.
// A publish failure is logged and dropped; the transition already committed.
func (h *RequestTransitionCommandHandler) publish(
	ctx context.Context,
	orderID kernel.UUID,
	result order.TransitionResult,
	occurredAt time.Time,
) {
	event := ports.TransitionEvent{
		OrderID:    orderID,
		Previous:   result.Previous,
		New:        result.New,
		OccurredAt: occurredAt,
	}

	if err := h.publisher.PublishTransition(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "lifecycle event dropped",
			"orderID", orderID.String(),
			"previous", result.Previous.String(),
			"new", result.New.String(),
			"error", err)
	}
}

// lockOrder returns the mutex serializing transitions for one order,
// creating it on first use.
func (h *RequestTransitionCommandHandler) lockOrder(orderID kernel.UUID) *sync.Mutex {
	lock, _ := h.orderLocks.LoadOrStore(orderID.String(), &sync.Mutex{})
	return lock.(*sync.Mutex)
}
