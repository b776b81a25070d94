package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-analytics/internal/analytics"
	"github.com/spec-kit/hr-analytics/internal/api/dto"
	"github.com/spec-kit/hr-analytics/internal/export"
)

// ExportHandler serves the filtered subset as a CSV download.
type ExportHandler struct {
	service *analytics.Service
}

// NewExportHandler constructs handler.
func NewExportHandler(service *analytics.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export GET /api/v1/export.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	query := dto.ExportQuery{
		DashboardQuery: dashboardQuery(c),
		Columns:        queryValues(c, "columns"),
	}
	spec, err := query.ToFilterSpec()
	if err != nil {
		return err
	}

	rows := h.service.Filtered(spec)
	payload, err := export.CSV(rows, query.SelectedColumns())
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("hr_data_filtered_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}
