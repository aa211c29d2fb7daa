// Package queries contains read-only operations for the CQRS read side.
// Availability reads go through the live capacity counters; history reads go
// straight to the database with raw SQL read models.
package queries

import (
	"errors"
	"time"

	"bakeshop/internal/pkg/errs"
	"bakeshop/internal/pkg/guard"
)

var ErrGetAvailabilityQueryIsNotConstructed = errors.New(
	"GetAvailabilityQuery must be created via NewGetAvailabilityQuery constructor",
)

// GetAvailabilityQuery retrieves the remaining capacity per time bucket for
// one business date. The answer comes from the same counters used to grant
// reservations, so it is exact at the moment it is read (a concurrent
// confirmation can still win the last unit first).
//
// Example:
//
//	query, err := NewGetAvailabilityQuery(date)
//	if err != nil {
//	    return fmt.Errorf("invalid availability request: %w", err)
//	}
//
//	slots, err := handler.Handle(ctx, query)
//	for _, s := range slots {
//	    fmt.Printf("%s %s: %d of %d free\n", s.Date, s.Bucket, s.Remaining, s.Limit)
//	}
type GetAvailabilityQuery struct { //nolint:recvcheck //using for validation
	date time.Time

	guard guard.ConstructorGuard
}

// NewGetAvailabilityQuery creates a query for one date's slot availability.
func NewGetAvailabilityQuery(date time.Time) (GetAvailabilityQuery, error) {
	if date.IsZero() {
		return GetAvailabilityQuery{}, errs.NewValueIsRequiredError("date")
	}

	return GetAvailabilityQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailabilityQueryIsNotConstructed if validation fails.
func (q GetAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailabilityQueryIsNotConstructed)
}

// Date returns the business date the query asks about.
func (q GetAvailabilityQuery) Date() time.Time {
	return q.date
}

// GetAvailabilityQueryResponse represents the capacity of one time bucket.
type GetAvailabilityQueryResponse struct {
	Date      string
	Bucket    string
	Limit     int
	Booked    int
	Remaining int
}
