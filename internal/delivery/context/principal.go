package context

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/service"
)

// KeyPrincipal is the key for storing the authenticated caller's claims.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the verified token claims in echo.Context.
func SetPrincipal(c echo.Context, claims *service.Claims) {
	c.Set(string(KeyPrincipal), claims)
}

// GetPrincipal extracts the verified token claims from echo.Context.
// Returns nil when the request never passed authentication.
func GetPrincipal(c echo.Context) *service.Claims {
	if claims, ok := c.Get(string(KeyPrincipal)).(*service.Claims); ok {
		return claims
	}

	return nil
}
