package kernel

import (
	"fmt"

	"bakeshop/internal/pkg/errs"
)

// Role identifies the kind of actor attempting an operation. The boundary
// layer resolves credentials to a role before calling the core; the core
// only consults the role for transition authorization and audit records.
type Role string

const (
	// RoleCustomer is the person who placed the order.
	RoleCustomer Role = "customer"

	// RoleStaff is a shop employee working the production pipeline.
	RoleStaff Role = "staff"

	// RoleAdmin is a shop manager; admins hold every staff permission.
	RoleAdmin Role = "admin"
)

// getValidRoles returns the set of roles the core accepts.
func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleCustomer: {},
		RoleStaff:    {},
		RoleAdmin:    {},
	}
}

// Validate checks if the Role value is one of the known roles.
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// IsStaff reports whether the role carries staff-level permissions.
// Admins hold every staff permission.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}
