package kernel

import (
	"fmt"
	"time"

	"bakeshop/internal/pkg/errs"
	"bakeshop/internal/pkg/guard"
)

const (
	// SlotMinHour is the earliest hour-of-day a slot may reference.
	SlotMinHour = 0
	// SlotMaxHour is the latest hour-of-day a slot may reference.
	SlotMaxHour = 23

	// slotDateLayout is the canonical date representation for slot keys.
	slotDateLayout = "2006-01-02"
	// slotBucketLayout is the canonical time-bucket representation for slot keys.
	slotBucketLayout = "15:04"
)

// ErrSlotIsNotConstructed is returned when attempting to use an improperly initialized Slot.
// Slots must be created using NewSlot or SlotFromStrings constructors to ensure validity.
var ErrSlotIsNotConstructed = errs.NewValueIsRequiredError(
	"slot must be created via NewSlot or SlotFromStrings constructors")

// Slot identifies one unit of schedulable production capacity: a calendar
// date combined with an hourly time bucket. Slot is an immutable value
// object; the date component is normalized to midnight UTC so that two
// slots built from different time zones compare equal when they name the
// same business date and hour.
//
// The zero value of Slot is invalid and will fail validation - use the
// constructors to create instances.
//
// Example:
//
//	slot, err := kernel.NewSlot(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 14)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(slot.Key()) // Output: 2024-06-01T14:00
type Slot struct { //nolint:recvcheck //using for validation
	date  time.Time
	hour  int
	guard guard.ConstructorGuard
}

// NewSlot creates a Slot for the given date and hour-of-day bucket.
// The date must be non-zero and the hour must lie within
// [SlotMinHour..SlotMaxHour]. Any time-of-day component of date is discarded.
func NewSlot(date time.Time, hour int) (Slot, error) {
	if date.IsZero() {
		return Slot{}, errs.NewValueIsRequiredError("date")
	}
	if hour < SlotMinHour || hour > SlotMaxHour {
		return Slot{}, errs.NewValueIsOutOfRangeError("hour", hour, SlotMinHour, SlotMaxHour)
	}

	y, m, d := date.UTC().Date()
	return Slot{
		date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		hour:  hour,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// SlotFromStrings parses a Slot from its wire representation:
// a "2006-01-02" date and a "15:04" time bucket. The bucket minutes must be
// zero since capacity is tracked per whole hour.
func SlotFromStrings(date, bucket string) (Slot, error) {
	day, err := time.Parse(slotDateLayout, date)
	if err != nil {
		return Slot{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	t, err := time.Parse(slotBucketLayout, bucket)
	if err != nil {
		return Slot{}, errs.NewValueIsInvalidErrorWithCause("timeBucket", err)
	}
	if t.Minute() != 0 {
		return Slot{}, errs.NewValueIsInvalidErrorWithCause("timeBucket",
			fmt.Errorf("%s is not aligned to a whole hour", bucket))
	}

	return NewSlot(day, t.Hour())
}

// Date returns the slot's calendar date at midnight UTC.
func (s Slot) Date() time.Time {
	return s.date
}

// Hour returns the slot's hour-of-day bucket.
func (s Slot) Hour() int {
	return s.hour
}

// Bucket returns the slot's time bucket in "15:04" form, e.g. "14:00".
func (s Slot) Bucket() string {
	return fmt.Sprintf("%02d:00", s.hour)
}

// Key returns a stable string key uniquely identifying the slot,
// suitable for addressing per-slot counters.
func (s Slot) Key() string {
	return s.date.Format(slotDateLayout) + "T" + s.Bucket()
}

// IsEqual compares two slots by date and hour.
func (s Slot) IsEqual(other Slot) bool {
	return s.date.Equal(other.date) && s.hour == other.hour
}

// String implements fmt.Stringer using the slot key.
func (s Slot) String() string {
	return s.Key()
}

// Validate checks that the Slot was created through a constructor.
// Returns ErrSlotIsNotConstructed for zero-value slots.
func (s Slot) Validate() error {
	return s.guard.Validate(ErrSlotIsNotConstructed)
}
