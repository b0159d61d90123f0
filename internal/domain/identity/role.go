package identity

import (
	"github.com/farmmarket/backend/internal/domain/shared"
)

// Role determines which marketplace operations a user may perform.
// Every user has exactly one role, carried by their Profile.
type Role string

const (
	RoleFarmer Role = "Farmer"
	RoleBuyer  Role = "Buyer"
	RoleAdmin  Role = "Admin"
)

// ParseRole converts a string to a Role, rejecting values outside the set
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return Role(s), nil
	}
	return "", shared.NewDomainError("INVALID_ROLE", "Role must be one of Farmer, Buyer, Admin")
}

// IsValid reports whether the role is a member of the allowed set
func (r Role) IsValid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
