package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
	mockSvc "marketplace/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticated(t *testing.T, authHeader string, tokenSvc *mockSvc.MockTokenService) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	rec, reached := runAuthenticated(t, "", tokenSvc)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	rec, reached := runAuthenticated(t, "Basic abc123", tokenSvc)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("bad-token").Return(nil, errors.New("failed to parse token structure"))

	rec, reached := runAuthenticated(t, "Bearer bad-token", tokenSvc)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestAuthMiddleware_ValidTokenSetsPrincipal(t *testing.T) {
	claims := &service.Claims{AccountID: 42, Role: "CUSTOMER", Email: "a@b.c", Status: "ACTIVE"}
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("good-token").Return(claims, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		assert.Equal(t, claims, deliverycontext.GetPrincipal(c))

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	testCases := []struct {
		name      string
		claimRole string
		wantPass  bool
	}{
		{"admin passes", "ADMIN", true},
		{"customer forbidden", "CUSTOMER", false},
		{"legacy seller label matches seller gate", "SALES", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			m := NewAuthMiddleware(tokenSvc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			deliverycontext.SetPrincipal(c, &service.Claims{AccountID: 1, Role: tc.claimRole})

			reached := false
			handler := m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
				reached = true

				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tc.wantPass, reached)
			if !tc.wantPass {
				assert.Equal(t, http.StatusForbidden, rec.Code)
				assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_RequireRoleNormalizesLegacyLabel(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/seller/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetPrincipal(c, &service.Claims{AccountID: 2, Role: "SALES"})

	reached := false
	handler := m.RequireRole(entity.RoleSeller)(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.True(t, reached)
}

func TestAuthMiddleware_RequireRoleWithoutPrincipal(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
