package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/SmartTrack-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetOverview devuelve el resumen agregado del inventario perecedero.
// GET /api/dashboard/overview
//
// Respuesta: DashboardOverviewDTO (total_stock, inventory_value, near_expiry_count,
// expired_count, system_status, stock_distribution, expiry_forecast, fefo_list).
// No requiere parámetros; la fecha de referencia la captura el servidor una vez
// por petición.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.uc.GetOverview(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(overview)
}
