package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Coinnecta-api/internal/application/analytics"
)

// ReportHandler estado de resultados e historial agrupado (protegido).
type ReportHandler struct {
	reports *appanalytics.ReportUseCase
	history *appanalytics.HistoryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appanalytics.ReportUseCase, history *appanalytics.HistoryUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, history: history}
}

// Get godoc
// @Summary      Estado de resultados de una importación
// @Description  id = "active" (o 0) usa la importación activa. Las monedas sin tasa se listan en report.warnings.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la importación o 'active'"
// @Success      200  {object}  dto.ProfitReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, ok := reportIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	out, err := h.reports.GetReport(c.UserContext(), GetWorkspaceID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar estado de resultados en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la importación o 'active'"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	id, ok := reportIDParam(c)
	if !ok {
		return invalidImportID(c)
	}
	doc, fileName, err := h.reports.DownloadPDF(c.UserContext(), GetWorkspaceID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(doc)
}

// History godoc
// @Summary      Historial de profit agrupado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        mode  query  string  false  "week, month (default) o year"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	out, err := h.history.Grouped(c.UserContext(), GetWorkspaceID(c), c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// reportIDParam acepta "active" o un ID numérico; 0 equivale a la activa.
func reportIDParam(c *fiber.Ctx) (int64, bool) {
	raw := c.Params("id")
	if raw == "active" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
