package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/application/reports"
)

// ReportHandler maneja la generación de reportes PDF (protegido).
type ReportHandler struct {
	uc *reports.StockReportUseCase
}

// NewReportHandler construye el handler inyectando el caso de uso.
func NewReportHandler(uc *reports.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReportPDF godoc
// @Summary      Reporte de inventario en PDF
// @Description  Saldos por ítem y préstamos vencidos al corte, listo para imprimir.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockReportPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdf, err := h.uc.GenerateStockReportPDF(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
	return c.Send(pdf)
}
