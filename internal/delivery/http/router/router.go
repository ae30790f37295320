// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dealscout/internal/delivery/http/middleware"
	"dealscout/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	FeedHandler     *handler.FeedHandler
	FavoriteHandler *handler.FavoriteHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	feedHandler     *handler.FeedHandler
	favoriteHandler *handler.FavoriteHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		feedHandler:     params.FeedHandler,
		favoriteHandler: params.FavoriteHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// The feed is public; a valid token only adds favorite annotations.
	e.GET("/deals", r.feedHandler.GetFeed, r.authMiddleware.OptionalAuthenticate)

	// Favorite routes require authentication
	favoriteGroup := e.Group("/favorites")
	favoriteGroup.Use(r.authMiddleware.Authenticate)
	{
		favoriteGroup.GET("", r.favoriteHandler.List)
		favoriteGroup.POST("/toggle", r.favoriteHandler.Toggle)
		favoriteGroup.POST("/refresh", r.favoriteHandler.Refresh)
	}
}
