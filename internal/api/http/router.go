package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-analytics/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Export    *handlers.ExportHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api/v1")
	api.Get("/filters/options", cfg.Dashboard.Options)
	api.Get("/dashboard", cfg.Dashboard.Dashboard)
	api.Get("/metrics", cfg.Dashboard.Summary)
	api.Get("/export", cfg.Export.Export)
}
