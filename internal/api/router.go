package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/servicedesk/atendimentos/docs"
	"github.com/servicedesk/atendimentos/internal/api/handler"
	"github.com/servicedesk/atendimentos/internal/api/middleware"
	"github.com/servicedesk/atendimentos/internal/core/ports"
	infrahttp "github.com/servicedesk/atendimentos/internal/infrastructure/http"
	"github.com/servicedesk/atendimentos/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs from the composition root.
type Dependencies struct {
	Users    ports.UserService
	Events   ports.EventService
	Location *time.Location
	Log      zerolog.Logger

	// CORSOrigins defaults to every origin when empty.
	CORSOrigins []string
	// HealthChecks feed /health/ready.
	HealthChecks []handlers.DependencyCheck

	// Metrics are exposed on /metrics only when both are set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLog(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
	}))
	if deps.Registerer != nil && deps.Gatherer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "atendimentos",
			Registerer: deps.Registerer,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Users)
	userHandler := handler.NewUserHandler(deps.Users)
	eventHandler := handler.NewEventHandler(deps.Events, deps.Location)

	// --- API routes ---
	g := e.Group("/api")
	g.GET("/criar-admin-inicial", authHandler.BootstrapAdmin)
	g.POST("/login", authHandler.Login)
	g.PUT("/minha-senha", authHandler.ChangePassword)

	g.GET("/atendimentos", eventHandler.List)
	g.POST("/atendimentos", eventHandler.Create)

	g.GET("/usuarios", userHandler.List)
	g.POST("/usuarios", userHandler.Create)
	g.DELETE("/usuarios/:id", userHandler.Delete)

	// --- Health probes and docs (no auth required) ---
	infrahttp.RegisterHealthRoutes(e, deps.HealthChecks...)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
