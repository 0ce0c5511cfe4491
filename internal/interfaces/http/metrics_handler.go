package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	appledger "github.com/jhoicas/FlotaStock-api/internal/application/ledger"
)

// MetricsHandler maneja las peticiones HTTP de KPIs del inventario (protegido).
type MetricsHandler struct {
	uc *appledger.MetricsUseCase
}

// NewMetricsHandler construye el handler inyectando el caso de uso.
func NewMetricsHandler(uc *appledger.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// GetMetrics godoc
// @Summary      KPIs del inventario
// @Description  Exactitud, tasa de ajuste, valor total y tendencia, rotación, fill rate,
// @Description  entregas a tiempo, ítems de baja rotación y concentración de uso.
// @Description  Los ratios sin datos suficientes se devuelven como null, nunca como cero.
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        window_days  query  int  false  "Ventana en días (default configurado, 30)"
// @Success      200  {object}  dto.MetricsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/metrics [get]
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetMetrics(companyID, c.QueryInt("window_days", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
