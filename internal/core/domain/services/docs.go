// Package services contains domain services coordinating behavior that does
// not belong to a single aggregate, most notably slot capacity allocation.
package services
