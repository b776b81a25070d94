package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-analytics/internal/analytics"
	"github.com/spec-kit/hr-analytics/internal/cache"
	"github.com/spec-kit/hr-analytics/internal/observability"
)

// HealthHandler responds to liveness, readiness and ops-metrics probes.
type HealthHandler struct {
	serviceName string
	version     string
	service     *analytics.Service
	cache       *cache.ResultCache
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, service *analytics.Service, resultCache *cache.ResultCache, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, service: service, cache: resultCache, metrics: metrics}
}

// Metrics reports the in-memory request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errorCounts := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errorCounts,
	}})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness: a loaded dataset is required, a reachable cache
// is reported but optional since the service degrades to compute-only.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if ds := h.service.Snapshot(); ds == nil {
		depStatus["dataset"] = "not loaded"
		ready = false
	} else {
		depStatus["dataset"] = fiber.Map{
			"rows":      ds.Len(),
			"loaded_at": ds.LoadedAt(),
			"source":    ds.Source(),
		}
	}

	if h.cache == nil {
		depStatus["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		depStatus["cache"] = err.Error()
	} else {
		depStatus["cache"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DATA_NOT_FOUND",
			"message": "dataset unavailable",
			"details": depStatus,
		},
	})
}
