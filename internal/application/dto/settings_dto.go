package dto

import (
	"time"

	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
)

// SettingsResponse configuración completa del espacio de trabajo.
type SettingsResponse struct {
	DefaultCountry  string                  `json:"default_country"`
	IncludeIVA      bool                    `json:"include_iva"`
	ExchangeRates   map[string]Amount       `json:"exchange_rates"`
	AdSpend         AdSpendDTO              `json:"ad_spend"`
	Expenses        ExpensesDTO             `json:"expenses"`
	CPAReference    CPAReferenceDTO         `json:"cpa_reference"`
	RateAssumptions RateAssumptionsDTO      `json:"rate_assumptions"`
	Profile         ProfileDTO              `json:"profile"`
	Countries       []market.CountryProfile `json:"countries"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// AdSpendDTO gasto publicitario.
type AdSpendDTO struct {
	Amount     Amount `json:"amount"`
	Currency   string `json:"currency"`
	UsesAgency bool   `json:"uses_agency"`
}

// CardExpenseDTO gasto con tarjeta.
type CardExpenseDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   Amount `json:"amount"`
	Currency string `json:"currency"`
}

// ExpensesDTO gastos operativos.
type ExpensesDTO struct {
	ShopifyUSD   Amount           `json:"shopify_usd"`
	CardExpenses []CardExpenseDTO `json:"card_expenses"`
	Other        Amount           `json:"other"`
}

// UpdateExpensesRequest gastos generales; las tarjetas se gestionan por separado.
type UpdateExpensesRequest struct {
	ShopifyUSD Amount `json:"shopify_usd"`
	Other      Amount `json:"other"`
}

// AddCardExpenseRequest alta de gasto con tarjeta.
type AddCardExpenseRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Amount   Amount `json:"amount"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// CPAReferenceDTO CPA medio de referencia.
type CPAReferenceDTO struct {
	Value    Amount `json:"value"`
	Currency string `json:"currency"`
}

// ProfileDTO datos del perfil.
type ProfileDTO struct {
	OwnerName    string `json:"owner_name" validate:"max=200"`
	BusinessName string `json:"business_name" validate:"max=200"`
}

// PreferencesRequest país por defecto e IVA.
type PreferencesRequest struct {
	DefaultCountry string `json:"default_country"`
	IncludeIVA     bool   `json:"include_iva"`
}

// UpdateRatesRequest reemplaza la tabla de tasas (unidades por 1 USD).
type UpdateRatesRequest struct {
	Rates map[string]Amount `json:"rates"`
}
