package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
)

// SettingsHandler configuración del espacio de trabajo. Las mutaciones quedan
// restringidas al propietario en el router.
type SettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración del espacio de trabajo
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRates godoc
// @Summary      Reemplazar tasas de cambio
// @Description  Unidades de cada moneda por 1 USD. USD siempre vale 1.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRatesRequest  true  "Tasas"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/rates [put]
func (h *SettingsHandler) UpdateRates(c *fiber.Ctx) error {
	var in dto.UpdateRatesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateRates(c.UserContext(), GetWorkspaceID(c), in))
}

// UpdateAdSpend godoc
// @Summary      Gasto publicitario
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdSpendDTO  true  "Monto, moneda y agencia"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/ad-spend [put]
func (h *SettingsHandler) UpdateAdSpend(c *fiber.Ctx) error {
	var in dto.AdSpendDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateAdSpend(c.UserContext(), GetWorkspaceID(c), in))
}

// UpdateExpenses godoc
// @Summary      Gastos operativos generales
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateExpensesRequest  true  "Shopify (USD) y otros"
// @Success      200   {object}  dto.SettingsResponse
// @Router       /api/settings/expenses [put]
func (h *SettingsHandler) UpdateExpenses(c *fiber.Ctx) error {
	var in dto.UpdateExpensesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateExpenses(c.UserContext(), GetWorkspaceID(c), in))
}

// AddCardExpense godoc
// @Summary      Agregar gasto con tarjeta
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCardExpenseRequest  true  "Nombre, monto y moneda"
// @Success      201   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/card-expenses [post]
func (h *SettingsHandler) AddCardExpense(c *fiber.Ctx) error {
	var in dto.AddCardExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddCardExpense(c.UserContext(), GetWorkspaceID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveCardExpense godoc
// @Summary      Eliminar gasto con tarjeta
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/card-expenses/{id} [delete]
func (h *SettingsHandler) RemoveCardExpense(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.RemoveCardExpense(c.UserContext(), GetWorkspaceID(c), c.Params("id")))
}

// UpdateCPAReference godoc
// @Summary      CPA de referencia
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CPAReferenceDTO  true  "Valor y moneda"
// @Success      200   {object}  dto.SettingsResponse
// @Router       /api/settings/cpa-reference [put]
func (h *SettingsHandler) UpdateCPAReference(c *fiber.Ctx) error {
	var in dto.CPAReferenceDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateCPAReference(c.UserContext(), GetWorkspaceID(c), in))
}

// UpdateRateAssumptions godoc
// @Summary      Supuestos de confirmación y entrega
// @Description  Porcentajes limitados a [0, 100].
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RateAssumptionsDTO  true  "confirmation_pct, delivery_pct"
// @Success      200   {object}  dto.SettingsResponse
// @Router       /api/settings/rate-assumptions [put]
func (h *SettingsHandler) UpdateRateAssumptions(c *fiber.Ctx) error {
	var in dto.RateAssumptionsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateRateAssumptions(c.UserContext(), GetWorkspaceID(c), in))
}

// UpdatePreferences godoc
// @Summary      País por defecto e IVA
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreferencesRequest  true  "default_country, include_iva"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/preferences [put]
func (h *SettingsHandler) UpdatePreferences(c *fiber.Ctx) error {
	var in dto.PreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdatePreferences(c.UserContext(), GetWorkspaceID(c), in))
}

// UpdateProfile godoc
// @Summary      Perfil del negocio
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProfileDTO  true  "owner_name, business_name"
// @Success      200   {object}  dto.SettingsResponse
// @Router       /api/settings/profile [put]
func (h *SettingsHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.ProfileDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c)(h.uc.UpdateProfile(c.UserContext(), GetWorkspaceID(c), in))
}

func (h *SettingsHandler) respond(c *fiber.Ctx) func(*dto.SettingsResponse, error) error {
	return func(out *dto.SettingsResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
