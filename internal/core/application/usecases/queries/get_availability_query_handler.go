package queries

import (
	"context"

	"bakeshop/internal/core/domain/services"
)

// GetAvailabilityQueryHandler serves availability reads from the capacity
// allocator. Unlike the other query handlers it does not touch the database:
// the allocator's counters are the authoritative booked counts, and reading
// anything else could advertise capacity a concurrent confirmation already
// claimed.
type GetAvailabilityQueryHandler struct {
	allocator *services.CapacityAllocator
}

// NewGetAvailabilityQueryHandler creates a handler for availability queries.
func NewGetAvailabilityQueryHandler(allocator *services.CapacityAllocator) GetAvailabilityQueryHandler {
	return GetAvailabilityQueryHandler{allocator: allocator}
}

// Handle returns the per-bucket availability of the queried date.
// Holidays and dates outside the calendar yield an empty result.
func (h GetAvailabilityQueryHandler) Handle(
	_ context.Context,
	query GetAvailabilityQuery,
) ([]GetAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := h.allocator.Availability(query.Date())

	responses := make([]GetAvailabilityQueryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, GetAvailabilityQueryResponse{
			Date:      entry.Slot.Date().Format("2006-01-02"),
			Bucket:    entry.Slot.Bucket(),
			Limit:     entry.Limit,
			Booked:    entry.Booked,
			Remaining: entry.Remaining,
		})
	}

	return responses, nil
}
