// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Role represents the type of account in the marketplace.
type Role string

const (
	// RoleCustomer is a regular shopper account.
	RoleCustomer Role = "CUSTOMER"
	// RoleSeller is a marketplace seller account, subject to admin approval.
	RoleSeller Role = "SELLER"
	// RoleAdmin is a privileged operator account.
	RoleAdmin Role = "ADMIN"
)

// legacyRoleSales is the historical label for sellers. Older clients and
// stored rows may still carry it; it is translated here and nowhere else.
const legacyRoleSales = "SALES"

// String returns the external (canonical) representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid canonical value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeRole maps a stored role label to the canonical enum,
// resolving the legacy SALES label to RoleSeller.
func NormalizeRole(s string) Role {
	if s == legacyRoleSales {
		return RoleSeller
	}

	return Role(s)
}

// ParseRegistrationRole resolves the role hint supplied at registration.
// SELLER and the legacy SALES alias both resolve to RoleSeller; anything
// else, including an empty hint, collapses to RoleCustomer.
func ParseRegistrationRole(s string) Role {
	switch s {
	case string(RoleSeller), legacyRoleSales:
		return RoleSeller
	default:
		return RoleCustomer
	}
}

// ParseRole resolves an inbound role string strictly. The legacy SALES
// alias is accepted as RoleSeller; unknown values are rejected.
func ParseRole(s string) (Role, bool) {
	if s == legacyRoleSales {
		return RoleSeller, true
	}

	role := Role(s)

	return role, role.IsValid()
}
