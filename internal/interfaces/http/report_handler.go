package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SmartTrack-api/internal/application/dto"
	"github.com/jhoicas/SmartTrack-api/internal/application/reports"
	"github.com/jhoicas/SmartTrack-api/internal/domain"
	"github.com/jhoicas/SmartTrack-api/internal/domain/expiry"
)

// ReportHandler maneja los endpoints de reportes (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetReport godoc
// @Summary      Reporte de inventario
// @Description  Rollup monetario por categoría sobre la ventana [from, to] inclusiva
//
//	(ambas opcionales) más la serie mensual salvado-vs-merma.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Param        category  query  string  false  "Categoría exacta o ALL"
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	req := reportRequest(c)
	out, err := h.uc.GetReport(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar reporte como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Param        category  query  string  false  "Categoría exacta o ALL"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	req := reportRequest(c)
	pdfBytes, err := h.uc.GetReportPDF(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	filename := fmt.Sprintf("reporte-inventario-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func reportRequest(c *fiber.Ctx) dto.ReportRequest {
	return dto.ReportRequest{
		From:     c.Query("from"),
		To:       c.Query("to"),
		Category: c.Query("category"),
	}
}

func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, expiry.ErrInvalidRange) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "from no puede ser posterior a to"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return internalError(c, err)
}
