// Package kernel provides shared value objects used across the domain model.
// These are the building blocks for aggregates and commands: identifiers,
// capacity slot keys, and actor roles.
//
// The package includes:
//   - UUID: An immutable identifier wrapping github.com/google/uuid
//   - Slot: A (date, hourly time-bucket) pair addressing one unit of
//     schedulable production capacity
//   - Role: The kind of actor attempting an operation
//
// All value objects follow the constructor-guard pattern: the zero value is
// invalid and Validate reports it, so aggregates can trust any value that
// passes validation.
package kernel
