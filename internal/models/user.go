package models

import "strings"

// Role represents a normalized user role.
// The backend emits role strings in several historical spellings
// ("ROLE_USER", "USER", "user"); everything past this boundary works
// with a single canonical value.
type Role string

const (
	RoleUser    Role = "USER"
	RoleVendor  Role = "VENDOR"
	RoleAdmin   Role = "ADMIN"
	RoleUnknown Role = "UNKNOWN"
)

// NormalizeRole maps any backend role spelling to a canonical Role.
func NormalizeRole(raw string) Role {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "ROLE_")

	switch s {
	case "USER", "BUYER", "CUSTOMER":
		return RoleUser
	case "VENDOR", "SELLER":
		return RoleVendor
	case "ADMIN", "SUPERADMIN", "SUPER_ADMIN":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// NormalizeRoles maps a list of backend role strings to canonical Roles,
// dropping duplicates but preserving first-seen order.
func NormalizeRoles(raw []string) []Role {
	seen := make(map[Role]bool, len(raw))
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role := NormalizeRole(r)
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	return roles
}

// User is the storefront's cached view of the backend user record.
// It is created server-side on registration and held here only for the
// lifetime of the browser session.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Role       Role   `json:"role"`
	Roles      []Role `json:"roles,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

// HasRole reports whether the user carries the given role, checking both
// the primary role and the secondary roles list.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	if u.Role == role {
		return true
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
