package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/formotex/inventory-api/docs"
	"github.com/formotex/inventory-api/internal/api/handler"
	"github.com/formotex/inventory-api/internal/api/middleware"
	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

// Deps is everything the HTTP layer needs. Registerer and Gatherer default to
// a private registry when nil.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Equipment ports.EquipmentService
	Checkers  map[string]handler.Checker

	Log zerolog.Logger
	Env string

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil || d.Gatherer == nil {
		reg := prometheus.NewRegistry()
		d.Registerer, d.Gatherer = reg, reg
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "inventory",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Checkers)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/ping", health.Ping)

	authenticated := middleware.Auth(d.Auth)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout, authenticated)
	api.GET("/auth/me", authHandler.Me, authenticated)

	// --- Users (admin only) ---
	userHandler := handler.NewUserHandler(d.Users)
	users := api.Group("/users", authenticated, middleware.RequireRole(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Equipment (any authenticated user, ownership enforced per record) ---
	equipmentHandler := handler.NewEquipmentHandler(d.Equipment)
	equipment := api.Group("/equipment", authenticated)
	equipment.GET("", equipmentHandler.List)
	equipment.POST("", equipmentHandler.Create)
	equipment.GET("/:id", equipmentHandler.Get)
	equipment.PATCH("/:id", equipmentHandler.Update)
	equipment.DELETE("/:id", equipmentHandler.Delete)

	return e
}
