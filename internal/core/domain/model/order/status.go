package order

import (
	"errors"
	"fmt"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct production workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> InProgress ──> Ready ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Every edge declares the minimum set of roles permitted to trigger it.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	// The requested slot is not yet reserved.
	Pending

	// Confirmed indicates payment was verified and the order's slot
	// has been reserved in the capacity allocator.
	Confirmed

	// InProgress indicates staff have started producing the order.
	InProgress

	// Ready indicates production finished and the order awaits pickup.
	Ready

	// Completed indicates the order was picked up.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was abandoned before completion.
	// This is a final state; any held slot reservation is released.
	Cancelled
)

var (
	// ErrInvalidTransition is returned when the requested edge does not
	// exist in the state graph from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized is returned when the caller's role is not in the
	// permitted set for an otherwise legal edge.
	ErrUnauthorized = errors.New("role is not permitted to perform this transition")
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		InProgress: "in_progress",
		Ready:      "ready",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		InProgress: "in_progress",
		Ready:      "ready",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getTransitionRoles returns the legal edge set of the state graph.
// Each edge maps to the minimum set of roles permitted to trigger it.
// Pairs absent from this table are invalid transitions for every role.
func getTransitionRoles() map[Status]map[Status][]kernel.Role {
	return map[Status]map[Status][]kernel.Role{
		Pending: {
			Confirmed: {kernel.RoleCustomer, kernel.RoleStaff, kernel.RoleAdmin},
			Cancelled: {kernel.RoleCustomer, kernel.RoleStaff, kernel.RoleAdmin},
		},
		Confirmed: {
			InProgress: {kernel.RoleStaff, kernel.RoleAdmin},
			Cancelled:  {kernel.RoleCustomer, kernel.RoleStaff, kernel.RoleAdmin},
		},
		InProgress: {
			Ready:     {kernel.RoleStaff, kernel.RoleAdmin},
			Cancelled: {kernel.RoleStaff, kernel.RoleAdmin},
		},
		Ready: {
			Completed: {kernel.RoleStaff, kernel.RoleAdmin},
		},
	}
}

// StatusFromString parses a status from its string representation.
// Returns an error for strings that do not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, InProgress, Ready, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HoldsCapacity reports whether an order in this status occupies a unit of
// its requested slot's capacity. The reservation is taken on entering
// Confirmed and kept through production; completion consumes the capacity
// for good, only cancellation returns it.
func (s Status) HoldsCapacity() bool {
	return s == Confirmed || s == InProgress || s == Ready
}

// CanTransitionTo reports whether an edge from s to target exists in the
// state graph, regardless of the acting role.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := getTransitionRoles()[s][target]
	return ok
}

// AuthorizeTransition checks that the edge from s to target exists and that
// the given role is permitted to trigger it.
//
// Returns:
//   - nil when the transition is legal for the role
//   - ErrInvalidTransition when the edge does not exist in the state graph
//   - ErrUnauthorized when the edge exists but the role is not permitted
//
// Guards independent of role (e.g. payment confirmation) are enforced by
// the Order aggregate, not here.
func (s Status) AuthorizeTransition(target Status, role kernel.Role) error {
	roles, ok := getTransitionRoles()[s][target]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}

	return fmt.Errorf("%w: %s may not trigger %s -> %s", ErrUnauthorized, role, s, target)
}
