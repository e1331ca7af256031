package service

import "marketplace/internal/domain/entity"

// Claims is the verified principal resolved from a session token for the
// duration of one request. Role and Status are the raw token labels; callers
// normalize Role before comparing, since old tokens may carry legacy labels.
type Claims struct {
	AccountID int64
	Role      string
	Email     string
	Status    string
}

// TokenService defines the interface for issuing and verifying session
// tokens. It abstracts the token format (JWT) from the use cases.
type TokenService interface {
	// Generate issues a signed session token carrying the account's
	// identity claims, with the configured expiry.
	Generate(account *entity.Account) (string, error)

	// Validate checks signature and expiry and returns the claims.
	Validate(tokenString string) (*Claims, error)
}
