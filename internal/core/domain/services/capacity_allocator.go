package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/ports"
)

var (
	// ErrCapacityExceeded is returned when a slot has no remaining
	// capacity. Holiday and out-of-hours slots have an effective limit of
	// 0, so reservations against them fail with this error as well.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrReservationNotHeld is returned when releasing a reservation that
	// is not currently held. Double release would corrupt the booked
	// counter, so it is reported as a fault instead of silently ignored.
	ErrReservationNotHeld = errors.New("reservation is not held")

	// ErrReservationAlreadyHeld is returned when an owner that already
	// holds a reservation attempts to reserve again. One order consumes at
	// most one unit of its slot's capacity.
	ErrReservationAlreadyHeld = errors.New("owner already holds a reservation")
)

// maxReserveAttempts bounds the compare-and-swap retry loop under
// contention. Every failed attempt means a concurrent caller progressed,
// so exhaustion only happens on a heavily contended counter; the attempt
// then surfaces a definitive ErrCapacityExceeded instead of spinning.
const maxReserveAttempts = 8

// Reservation is a handle representing one consumed unit of a slot's
// capacity. Each reservation is released at most once.
type Reservation struct {
	slot     kernel.Slot
	owner    kernel.UUID
	released atomic.Bool
}

// Slot returns the slot this reservation occupies.
func (r *Reservation) Slot() kernel.Slot {
	return r.slot
}

// Owner returns the identifier of the order holding the reservation.
func (r *Reservation) Owner() kernel.UUID {
	return r.owner
}

// slotCounter is the authoritative booked count for one slot.
// Mutated only through atomic compare-and-swap.
type slotCounter struct {
	booked atomic.Int64
}

// SlotAvailability is the derived per-bucket read used by the booking UI.
type SlotAvailability struct {
	Slot      kernel.Slot
	Limit     int
	Booked    int
	Remaining int
}

// CapacityAllocator owns the per-slot booking counters and enforces the
// booked <= limit invariant under concurrent reservation and release.
//
// Counters are keyed, independently updated state: each slot has its own
// atomic counter, lazily materialized on first reference and never deleted,
// so requests against disjoint slots proceed fully in parallel. Slot limits
// come from the business calendar (per-hour capacity within opening hours,
// zero on holidays).
//
// Reservation handles are tracked per owning order so that cancellation
// releases exactly the unit that order consumed, and so persisted
// reservations can be re-adopted into the counters after a restart.
type CapacityAllocator struct {
	calendar ports.BusinessCalendar

	mu       sync.RWMutex
	counters map[string]*slotCounter

	holdersMu sync.Mutex
	holders   map[string]*Reservation
}

// NewCapacityAllocator creates an allocator drawing slot limits from the
// given business calendar.
func NewCapacityAllocator(calendar ports.BusinessCalendar) *CapacityAllocator {
	return &CapacityAllocator{
		calendar: calendar,
		counters: make(map[string]*slotCounter),
		holders:  make(map[string]*Reservation),
	}
}

// counter returns the slot's counter, lazily materializing it with
// booked = 0 on first reference.
func (a *CapacityAllocator) counter(slot kernel.Slot) *slotCounter {
	key := slot.Key()

	a.mu.RLock()
	c, ok := a.counters[key]
	a.mu.RUnlock()
	if ok {
		return c
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok = a.counters[key]; ok {
		return c
	}
	c = &slotCounter{}
	a.counters[key] = c
	return c
}

// Reserve consumes one unit of the slot's capacity on behalf of owner.
//
// The booked counter is advanced with a bounded compare-and-swap loop:
// two simultaneous reservations against a slot with one remaining unit
// result in exactly one success and one ErrCapacityExceeded. Returns
// ErrReservationAlreadyHeld if the owner already holds a reservation;
// the check and the registration are a single critical section, so two
// concurrent reserves by the same owner cannot both pass it and consume
// two units.
func (a *CapacityAllocator) Reserve(slot kernel.Slot, owner kernel.UUID) (*Reservation, error) {
	if err := errors.Join(slot.Validate(), owner.Validate()); err != nil {
		return nil, err
	}

	// Register the holder before touching the counter; a rejected attempt
	// unregisters on its way out.
	res := &Reservation{slot: slot, owner: owner}
	a.holdersMu.Lock()
	if _, held := a.holders[owner.String()]; held {
		a.holdersMu.Unlock()
		return nil, fmt.Errorf("%w: order %s", ErrReservationAlreadyHeld, owner)
	}
	a.holders[owner.String()] = res
	a.holdersMu.Unlock()

	limit := int64(a.calendar.SlotLimit(slot))
	if limit <= 0 {
		a.unhold(res)
		return nil, fmt.Errorf("%w: slot %s is not bookable", ErrCapacityExceeded, slot)
	}

	c := a.counter(slot)
	for range maxReserveAttempts {
		booked := c.booked.Load()
		if booked >= limit {
			a.unhold(res)
			return nil, fmt.Errorf("%w: slot %s is full (%d/%d)", ErrCapacityExceeded, slot, booked, limit)
		}
		if c.booked.CompareAndSwap(booked, booked+1) {
			return res, nil
		}
	}

	// Retries exhausted under contention; report a definitive outcome
	// rather than spinning indefinitely.
	a.unhold(res)
	return nil, fmt.Errorf("%w: slot %s is contended", ErrCapacityExceeded, slot)
}

// Adopt re-occupies one unit of the slot's capacity for an order whose
// reservation was persisted before a restart. Adoption bypasses the limit
// check: the unit was already granted when the order confirmed, and the
// counters must reflect persisted reality even if the calendar has since
// lowered the limit.
func (a *CapacityAllocator) Adopt(slot kernel.Slot, owner kernel.UUID) (*Reservation, error) {
	if err := errors.Join(slot.Validate(), owner.Validate()); err != nil {
		return nil, err
	}

	a.counter(slot).booked.Add(1)
	return a.hold(slot, owner), nil
}

// hold registers and returns the owner's reservation handle.
func (a *CapacityAllocator) hold(slot kernel.Slot, owner kernel.UUID) *Reservation {
	res := &Reservation{slot: slot, owner: owner}

	a.holdersMu.Lock()
	a.holders[owner.String()] = res
	a.holdersMu.Unlock()

	return res
}

// unhold removes a registration whose unit was never granted (or was
// returned before the handle escaped).
func (a *CapacityAllocator) unhold(res *Reservation) {
	a.holdersMu.Lock()
	if a.holders[res.owner.String()] == res {
		delete(a.holders, res.owner.String())
	}
	a.holdersMu.Unlock()
}

// Release returns the reservation's unit to its slot.
//
// Safe to call exactly once per reservation: releasing a handle that is
// not currently held (nil, already released, or tracking a drained
// counter) is a programming error reported as ErrReservationNotHeld.
func (a *CapacityAllocator) Release(res *Reservation) error {
	if res == nil {
		return ErrReservationNotHeld
	}
	if !res.released.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: slot %s was already released", ErrReservationNotHeld, res.slot)
	}

	c := a.counter(res.slot)
	for {
		booked := c.booked.Load()
		if booked <= 0 {
			return fmt.Errorf("%w: slot %s has no booked units", ErrReservationNotHeld, res.slot)
		}
		if c.booked.CompareAndSwap(booked, booked-1) {
			break
		}
	}

	a.holdersMu.Lock()
	if a.holders[res.owner.String()] == res {
		delete(a.holders, res.owner.String())
	}
	a.holdersMu.Unlock()

	return nil
}

// ReleaseOwner releases the reservation held by the given order, if any.
// Returns ErrReservationNotHeld when the order holds no reservation.
func (a *CapacityAllocator) ReleaseOwner(owner kernel.UUID) error {
	a.holdersMu.Lock()
	res, ok := a.holders[owner.String()]
	a.holdersMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: order %s", ErrReservationNotHeld, owner)
	}
	return a.Release(res)
}

// Booked returns the slot's current booked count.
func (a *CapacityAllocator) Booked(slot kernel.Slot) int {
	return int(a.counter(slot).booked.Load())
}

// Availability returns the remaining capacity per bookable bucket of the
// given date. The read goes through the same authoritative counters used
// for reservation; it is never served from a separate cached copy.
func (a *CapacityAllocator) Availability(date time.Time) []SlotAvailability {
	slots := a.calendar.DaySlots(date)
	result := make([]SlotAvailability, 0, len(slots))

	for _, slot := range slots {
		limit := a.calendar.SlotLimit(slot)
		booked := a.Booked(slot)

		remaining := limit - booked
		if remaining < 0 {
			remaining = 0
		}

		result = append(result, SlotAvailability{
			Slot:      slot,
			Limit:     limit,
			Booked:    booked,
			Remaining: remaining,
		})
	}

	return result
}
