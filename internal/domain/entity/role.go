// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a principal can have in the system.
type Role string

const (
	// RoleUser indicates a regular consumer.
	RoleUser Role = "user"
	// RoleCompany indicates a food company that lists products.
	RoleCompany Role = "company"
	// RoleAdmin indicates a moderator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCompany, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsSelfRegistrable reports whether the role may be chosen at sign-up.
func (r Role) IsSelfRegistrable() bool {
	return r == RoleUser || r == RoleCompany
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
