package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("SamePassword1!")
	assert.NoError(t, err)

	second, err := hasher.Hash("SamePassword1!")
	assert.NoError(t, err)

	// bcrypt salts per call, so identical inputs never share a hash.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("SamePassword1!", first))
	assert.True(t, hasher.Check("SamePassword1!", second))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}
