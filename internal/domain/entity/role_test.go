package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegistrationRole(t *testing.T) {
	assert.Equal(t, RoleSeller, ParseRegistrationRole("SELLER"))
	assert.Equal(t, RoleSeller, ParseRegistrationRole("SALES"))

	// Anything else collapses to customer, including empty and unknown hints.
	assert.Equal(t, RoleCustomer, ParseRegistrationRole(""))
	assert.Equal(t, RoleCustomer, ParseRegistrationRole("CUSTOMER"))
	assert.Equal(t, RoleCustomer, ParseRegistrationRole("ADMIN"))
	assert.Equal(t, RoleCustomer, ParseRegistrationRole("seller"))
}

func TestParseRole_Strict(t *testing.T) {
	role, ok := ParseRole("SELLER")
	assert.True(t, ok)
	assert.Equal(t, RoleSeller, role)

	role, ok = ParseRole("SALES")
	assert.True(t, ok)
	assert.Equal(t, RoleSeller, role)

	role, ok = ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("WIZARD")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleSeller, NormalizeRole("SALES"))
	assert.Equal(t, RoleSeller, NormalizeRole("SELLER"))
	assert.Equal(t, RoleCustomer, NormalizeRole("CUSTOMER"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(RoleSeller))
	assert.Equal(t, StatusActive, InitialStatus(RoleCustomer))
	assert.Equal(t, StatusActive, InitialStatus(RoleAdmin))
}

func TestAccount_CanLogin(t *testing.T) {
	assert.False(t, (&Account{Role: RoleSeller, Status: StatusPending}).CanLogin())
	assert.False(t, (&Account{Role: RoleSeller, Status: StatusSuspended}).CanLogin())
	assert.True(t, (&Account{Role: RoleSeller, Status: StatusActive}).CanLogin())

	// Only sellers are gated on status at login.
	assert.True(t, (&Account{Role: RoleCustomer, Status: StatusSuspended}).CanLogin())
	assert.True(t, (&Account{Role: RoleAdmin, Status: StatusActive}).CanLogin())
}
