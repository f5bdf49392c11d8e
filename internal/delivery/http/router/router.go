// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	CatalogHandler  *handler.CatalogHandler
	ReviewHandler   *handler.ReviewHandler

	IdentityMiddleware *middleware.IdentityMiddleware
	LoggerMiddleware   *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	catalogHandler  *handler.CatalogHandler
	reviewHandler   *handler.ReviewHandler

	identityMiddleware *middleware.IdentityMiddleware
	loggerMiddleware   *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		cartHandler:        params.CartHandler,
		checkoutHandler:    params.CheckoutHandler,
		orderHandler:       params.OrderHandler,
		catalogHandler:     params.CatalogHandler,
		reviewHandler:      params.ReviewHandler,
		identityMiddleware: params.IdentityMiddleware,
		loggerMiddleware:   params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	e.Use(r.loggerMiddleware.Handle)
	e.Use(r.identityMiddleware.Resolve)

	// Identity routes
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/session", r.authHandler.Session)
		authGroup.GET("/profile", r.authHandler.Profile, r.identityMiddleware.RequireAuth)
	}

	// Cart routes: available to both guests and authenticated shoppers
	cartGroup := e.Group("/api/cart")
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	// Checkout routes
	checkoutGroup := e.Group("/api/checkout")
	{
		checkoutGroup.POST("", r.checkoutHandler.Begin)
		checkoutGroup.GET("", r.checkoutHandler.Current)
		checkoutGroup.POST("/shipping", r.checkoutHandler.SubmitShipping)
		checkoutGroup.POST("/payment", r.checkoutHandler.SubmitPayment)
		checkoutGroup.POST("/edit", r.checkoutHandler.EditStep)
		checkoutGroup.POST("/submit", r.checkoutHandler.Submit)
		checkoutGroup.DELETE("", r.checkoutHandler.Abandon)
		checkoutGroup.POST("/cancel", r.checkoutHandler.Cancel)
	}

	// Order routes
	orderGroup := e.Group("/api/orders")
	{
		orderGroup.GET("/:orderId/confirmation", r.orderHandler.Confirmation)
		orderGroup.GET("", r.orderHandler.List,
			r.identityMiddleware.RequireAuth,
			r.identityMiddleware.RequireRole(entity.RoleAdmin))
	}

	// Catalog routes
	catalogGroup := e.Group("/api/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:slug", r.catalogHandler.GetProduct)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
		catalogGroup.GET("/categories/:slug", r.catalogHandler.GetCategory)
	}

	// Review routes
	reviewGroup := e.Group("/api/reviews")
	{
		reviewGroup.GET("/product/:productId", r.reviewHandler.ListReviews)
		reviewGroup.POST("/:reviewId/helpful", r.reviewHandler.VoteHelpful)
	}
}
