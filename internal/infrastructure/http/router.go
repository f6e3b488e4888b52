package http

import (
	"github.com/labstack/echo/v4"

	"github.com/servicedesk/atendimentos/internal/infrastructure/http/handlers"
)

// RegisterHealthRoutes mounts the liveness and readiness probes on e.
// They sit outside /api and need no credentials.
func RegisterHealthRoutes(e *echo.Echo, checks ...handlers.DependencyCheck) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
}
