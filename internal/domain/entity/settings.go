package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
)

// AdSpendConfig gasto publicitario del periodo.
type AdSpendConfig struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	UsesAgency bool            `json:"uses_agency"`
}

// CardExpense gasto recurrente pagado con tarjeta en su propia moneda.
type CardExpense struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// OperatingExpenses gastos operativos del periodo. ShopifyUSD siempre está en USD;
// Other ya está en moneda local.
type OperatingExpenses struct {
	ShopifyUSD   decimal.Decimal `json:"shopify_usd"`
	CardExpenses []CardExpense   `json:"card_expenses"`
	Other        decimal.Decimal `json:"other"`
}

// CPAReference CPA medio de referencia que el usuario compara contra sus productos.
type CPAReference struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// Settings configuración de un espacio de trabajo. Se pasa explícitamente a cada cálculo.
type Settings struct {
	WorkspaceID     string
	DefaultCountry  string
	IncludeIVA      bool
	ExchangeRates   currency.RateTable
	AdSpend         AdSpendConfig
	Expenses        OperatingExpenses
	CPAReference    CPAReference
	RateAssumptions RateAssumptions
	UpdatedAt       time.Time
}

// DefaultSettings configuración inicial de un espacio de trabajo nuevo.
func DefaultSettings(workspaceID string, rates currency.RateTable) *Settings {
	if rates == nil {
		rates = currency.DefaultRates()
	}
	return &Settings{
		WorkspaceID:     workspaceID,
		DefaultCountry:  "colombia",
		ExchangeRates:   rates.Clone(),
		AdSpend:         AdSpendConfig{Amount: decimal.Zero, Currency: currency.USD},
		Expenses:        OperatingExpenses{ShopifyUSD: decimal.Zero, CardExpenses: []CardExpense{}, Other: decimal.Zero},
		CPAReference:    CPAReference{Value: decimal.Zero, Currency: currency.USD},
		RateAssumptions: DefaultRateAssumptions(),
		UpdatedAt:       time.Now(),
	}
}
