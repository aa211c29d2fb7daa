package queries_test

import (
	"testing"
	"time"

	"bakeshop/internal/core/application/usecases/queries"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCalendar is open 9:00-12:00 with a uniform per-slot limit.
type fixedCalendar struct {
	limit int
}

func (c *fixedCalendar) Now() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC) }

func (c *fixedCalendar) SlotLimit(slot kernel.Slot) int {
	if slot.Hour() < 9 || slot.Hour() >= 12 {
		return 0
	}
	return c.limit
}

func (c *fixedCalendar) DaySlots(date time.Time) []kernel.Slot {
	slots := make([]kernel.Slot, 0, 3)
	for hour := 9; hour < 12; hour++ {
		slot, _ := kernel.NewSlot(date, hour)
		slots = append(slots, slot)
	}
	return slots
}

func TestGetAvailabilityQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	allocator := services.NewCapacityAllocator(&fixedCalendar{limit: 2})
	slot, err := kernel.NewSlot(date, 10)
	require.NoError(t, err)
	_, err = allocator.Reserve(slot, kernel.NewUUID())
	require.NoError(t, err)

	handler := queries.NewGetAvailabilityQueryHandler(allocator)
	query, err := queries.NewGetAvailabilityQuery(date)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, result, 3)

	for _, entry := range result {
		assert.Equal(t, "2024-06-01", entry.Date)
		assert.Equal(t, 2, entry.Limit)
		if entry.Bucket == "10:00" {
			assert.Equal(t, 1, entry.Booked)
			assert.Equal(t, 1, entry.Remaining)
		} else {
			assert.Equal(t, 0, entry.Booked)
			assert.Equal(t, 2, entry.Remaining)
		}
	}
}

func TestGetAvailabilityQueryHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	handler := queries.NewGetAvailabilityQueryHandler(
		services.NewCapacityAllocator(&fixedCalendar{limit: 2}))

	_, err := handler.Handle(ctx, queries.GetAvailabilityQuery{})
	require.Error(t, err)
}
