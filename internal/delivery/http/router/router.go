// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	AdminHandler        *handler.AdminHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		profileHandler:      params.ProfileHandler,
		adminHandler:        params.AdminHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public account lifecycle routes
	e.POST("/register", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)

	// Self-service routes for any authenticated account
	e.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	e.GET("/me", r.profileHandler.GetProfile, r.authMiddleware.Authenticate)
	e.PUT("/me", r.profileHandler.UpdateProfile, r.authMiddleware.Authenticate)
	e.POST("/avatar", r.profileHandler.UploadAvatar, r.authMiddleware.Authenticate)

	// Admin routes: authenticated and gated on the ADMIN role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/overview", r.adminHandler.Overview)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PATCH("/users/:id", r.adminHandler.PatchUser)
		adminGroup.GET("/sellers", r.adminHandler.ListSellers)
		adminGroup.PATCH("/sellers/:id/approve", r.adminHandler.DecideSeller)
	}
}
