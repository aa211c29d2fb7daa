package ports

import (
	"time"

	"bakeshop/internal/core/domain/model/kernel"
)

// BusinessCalendar is the read-only clock/calendar oracle the core consults
// for current time, business hours, per-slot capacity, and holidays.
// Implementations refresh on a slow cadence; minutes of staleness on
// calendar configuration are acceptable.
type BusinessCalendar interface {
	// Now returns the current time.
	Now() time.Time

	// SlotLimit returns the maximum number of orders bookable into the
	// given slot. Slots outside business hours and slots on holidays have
	// an effective limit of 0.
	SlotLimit(slot kernel.Slot) int

	// DaySlots returns the bookable slots of the given date, one per open
	// hour. Holidays yield an empty list.
	DaySlots(date time.Time) []kernel.Slot
}
