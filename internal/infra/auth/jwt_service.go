// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
)

// sessionClaims is the wire shape of a session token payload. The account ID
// travels in the registered "sub" claim as a decimal string.
type sessionClaims struct {
	Role   string `json:"role"`
	Email  string `json:"email"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour * 24 * 7
	}

	return &jwtService{
		secret: []byte(cfg.Auth.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Generate creates a signed session token for an account. The claims carry
// the role, email and status so the middleware can authorize without a
// database round trip.
func (s *jwtService) Generate(account *entity.Account) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Role:   account.Role.String(),
		Email:  account.Email,
		Status: account.Status.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(account.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate parses and verifies a session token and returns its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token claims have unexpected shape")
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "token subject is not an account id")
	}

	return &service.Claims{
		AccountID: accountID,
		Role:      claims.Role,
		Email:     claims.Email,
		Status:    claims.Status,
	}, nil
}
