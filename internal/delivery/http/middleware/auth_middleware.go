package middleware

import (
	"net/http"
	"strings"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Error messages returned by the auth middleware; part of the API contract.
const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
	msgForbidden    = "Forbidden"
)

// AuthMiddleware provides middleware for session token authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgNoToken})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidToken})
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidToken})
		}

		// Expose the caller to handlers and to the service layer.
		deliverycontext.SetPrincipal(c, claims)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller holds one of
// the given roles. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetPrincipal(c)
			if claims == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": msgForbidden})
			}

			// Tokens issued before the role rename may carry the legacy label.
			callerRole := entity.NormalizeRole(claims.Role)
			for _, role := range roles {
				if callerRole == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]string{"error": msgForbidden})
		}
	}
}
