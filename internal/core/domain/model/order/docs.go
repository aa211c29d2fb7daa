// Package order provides domain entities and business logic for order
// lifecycle management in the bake shop. It implements the Order aggregate
// root with a role-authorized status state machine.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, requested slot,
//     payment guard state, and lifecycle timestamps
//   - Status: A state machine that enforces valid transitions and per-edge
//     role authorization
//   - PaymentStatus: The payment outcome written by the external payment
//     collaborator and read by the state machine as a guard
//
// Key business rules:
//   - Orders follow the workflow Pending -> Confirmed -> InProgress ->
//     Ready -> Completed, with Cancelled reachable from Pending, Confirmed,
//     and InProgress
//   - Pending -> Confirmed additionally requires a paid payment status
//   - Customers may confirm and cancel their orders; only staff move orders
//     through production
//   - Re-requesting the current status is an idempotent no-op success
//   - confirmedAt and readyAt are stamped exactly once by the transitions
//     entering the corresponding states
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
