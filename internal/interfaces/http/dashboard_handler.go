package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del tablero de inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve las estadísticas del inventario.
// GET /api/stock/dashboard-stats
//
// Respuesta: DashboardStatsDTO (total_products, inventory_value, low_stock_items,
// stock_status, recent_transactions).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
