package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"order-manager/internal/core/logger"
	"order-manager/internal/core/server"
	"order-manager/internal/features/reports/domain"
	"order-manager/internal/features/reports/render"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportWriter is implemented by service.ReportService.
type ReportWriter interface {
	Write(ctx context.Context, w io.Writer, reportType domain.ReportType, format render.Format) (string, error)
}

// ReportHandler handles HTTP requests for reports.
type ReportHandler struct {
	service ReportWriter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service ReportWriter) *ReportHandler {
	return &ReportHandler{service: service}
}

// Register mounts the report routes on router.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/reports/:type", h.GetReport)
}

// GetReport handles GET /reports/:type.
// @Summary Generate a report
// @Description Sales (vendas) or customers (clientes) report as text, csv or json.
// @Tags Reports
// @Produce plain
// @Produce json
// @Param type path string true "Report type" Enums(vendas, clientes)
// @Param format query string false "Output format" Enums(text, csv, json)
// @Success 200 {string} string
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /reports/{type} [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportType := domain.ReportType(c.Params("type"))
	format := render.Format(c.Query("format"))

	var buf bytes.Buffer
	contentType, err := h.service.Write(c.UserContext(), &buf, reportType, format)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReport):
			return server.Error(c, http.StatusNotFound, "Unknown report type")
		case errors.Is(err, domain.ErrUnknownFormat):
			return server.Error(c, http.StatusBadRequest, "Unknown report format")
		}
		logger.Get().Error("Failed to generate report",
			zap.String("type", string(reportType)),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
