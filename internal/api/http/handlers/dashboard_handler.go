package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-analytics/internal/analytics"
	"github.com/spec-kit/hr-analytics/internal/api/dto"
)

// DashboardHandler serves the computed aggregates the rendering layer draws.
type DashboardHandler struct {
	service *analytics.Service
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(service *analytics.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard GET /api/v1/dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	spec, err := parseFilterQuery(c)
	if err != nil {
		return err
	}
	payload, err := h.service.Dashboard(c.UserContext(), spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}

// Summary GET /api/v1/metrics.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	spec, err := parseFilterQuery(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.service.Summary(c.UserContext(), spec)})
}

// Options GET /api/v1/filters/options.
func (h *DashboardHandler) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Options()})
}

func parseFilterQuery(c *fiber.Ctx) (analytics.FilterSpec, error) {
	return dashboardQuery(c).ToFilterSpec()
}

func dashboardQuery(c *fiber.Ctx) dto.DashboardQuery {
	return dto.DashboardQuery{
		Departments: queryValues(c, "department"),
		Statuses:    queryValues(c, "status"),
		Genders:     queryValues(c, "gender"),
		PerfMin:     c.Query("perf_min"),
		PerfMax:     c.Query("perf_max"),
	}
}

// queryValues collects repeated query parameters, e.g. ?department=A&department=B.
func queryValues(c *fiber.Ctx, key string) []string {
	var out []string
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) == key {
			out = append(out, string(v))
		}
	})
	return out
}
