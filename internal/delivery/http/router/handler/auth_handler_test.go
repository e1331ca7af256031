package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/validator"
	domainerrors "marketplace/internal/domain/errors"
	mockUsecase "marketplace/internal/mocks/usecase"
	"marketplace/internal/usecase"
)

// newAuthTestServer wires the handler behind a real echo instance with the
// production validator and error handler, so tests observe the exact status
// codes and JSON bodies clients receive.
func newAuthTestServer(t *testing.T) (*echo.Echo, *mockUsecase.MockAccountUsecase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := mockUsecase.NewMockAccountUsecase(t)
	authHandler := NewAuthHandler(uc, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	return e, uc
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e, uc := newAuthTestServer(t)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Run(func(ctx context.Context, input *usecase.RegisterInput) {
			assert.Equal(t, "new@example.com", input.Email)
			assert.Equal(t, "CUSTOMER", input.Role)
		}).
		Return(&usecase.RegisterOutput{Message: "User registered successfully"}, nil)

	rec := postJSON(e, "/register", `{"email":"new@example.com","password":"StrongPass123!","role":"CUSTOMER"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e, uc := newAuthTestServer(t)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrDuplicateEmail.WrapMessage("email taken@example.com already registered"))

	rec := postJSON(e, "/register", `{"email":"taken@example.com","password":"StrongPass123!"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, rec.Body.String())
}

func TestAuthHandler_Register_MissingPassword(t *testing.T) {
	e, _ := newAuthTestServer(t)

	// The validator rejects the payload before the usecase is reached, so
	// no expectation is set on the mock.
	rec := postJSON(e, "/register", `{"email":"new@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid input"}`, rec.Body.String())
}

func TestAuthHandler_Login_PendingSeller(t *testing.T) {
	e, uc := newAuthTestServer(t)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrPendingApproval.WrapMessage("seller 7 awaiting decision"))

	rec := postJSON(e, "/login", `{"email":"seller@example.com","password":"StrongPass123!"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Your account is pending admin approval."}`, rec.Body.String())
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e, uc := newAuthTestServer(t)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.LoginOutput{Message: "Login successful", Token: "signed-token", Role: "CUSTOMER"}, nil)

	rec := postJSON(e, "/login", `{"email":"user@example.com","password":"StrongPass123!"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Login successful","token":"signed-token","role":"CUSTOMER"}`, rec.Body.String())
}

func TestAuthHandler_Login_UntypedErrorIsHidden(t *testing.T) {
	e, uc := newAuthTestServer(t)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, errors.New("pq: connection refused"))

	rec := postJSON(e, "/login", `{"email":"user@example.com","password":"StrongPass123!"}`)

	// Untyped failures surface as a generic 500 without leaking detail.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Something went wrong"}`, rec.Body.String())
}
