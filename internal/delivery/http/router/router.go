// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	deliverymiddleware "accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *deliverymiddleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *deliverymiddleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	accountGroup := e.Group("/accounts")
	{
		accountGroup.POST("", r.accountHandler.Create)
		accountGroup.POST("/login", r.accountHandler.Login)
		accountGroup.GET("/:id", r.accountHandler.Get)
		accountGroup.PUT("/:id", r.accountHandler.Update)
		accountGroup.PUT("/:id/password", r.accountHandler.UpdatePassword)
		accountGroup.DELETE("/:id", r.accountHandler.Delete)
	}

	// Routes that require a bearer token
	meGroup := e.Group("/accounts/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.accountHandler.Me)
	}
}
