package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Coinnecta-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el P&L de la importación activa y la evolución del profit.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (active_report, profit_history[10], max_abs_profit,
// import_count, product_count). active_report es null si no hay importaciones.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
