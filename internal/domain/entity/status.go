// Package entity contains the core business objects of the project.
package entity

// Status represents the lifecycle state of an account. It governs login
// eligibility for sellers: only an active seller may authenticate.
type Status string

const (
	// StatusPending is the initial state of a freshly registered seller.
	StatusPending Status = "PENDING"
	// StatusActive is the normal state; customers and admins start here.
	StatusActive Status = "ACTIVE"
	// StatusSuspended marks a rejected or disabled seller.
	StatusSuspended Status = "SUSPENDED"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended:
		return true
	default:
		return false
	}
}

// ParseStatus resolves an inbound status string strictly.
func ParseStatus(s string) (Status, bool) {
	status := Status(s)

	return status, status.IsValid()
}

// InitialStatus returns the status an account of the given role is created
// with. Sellers start pending admin approval; everyone else starts active.
func InitialStatus(role Role) Status {
	if role == RoleSeller {
		return StatusPending
	}

	return StatusActive
}
