package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDraft parámetros de un producto en evaluación. Montos en moneda local del país.
type ProductDraft struct {
	Name       string
	Country    string          // código de país (colombia, mexico, espana)
	SalePrice  decimal.Decimal // precio de venta
	Cost       decimal.Decimal // costo proveedor
	Shipping   decimal.Decimal // flete
	TargetCPA  decimal.Decimal // CPA objetivo; 0 = sin objetivo
	IncludeIVA bool
}

// RateAssumptions supuestos de confirmación y entrega del simulador COD (0-100).
type RateAssumptions struct {
	ConfirmationPct decimal.Decimal `json:"confirmation_pct"`
	DeliveryPct     decimal.Decimal `json:"delivery_pct"`
}

// DefaultRateAssumptions 90% confirmación, 60% entrega.
func DefaultRateAssumptions() RateAssumptions {
	return RateAssumptions{
		ConfirmationPct: decimal.NewFromInt(90),
		DeliveryPct:     decimal.NewFromInt(60),
	}
}

// Clamped devuelve una copia con ambos porcentajes dentro de [0, 100].
func (a RateAssumptions) Clamped() RateAssumptions {
	return RateAssumptions{
		ConfirmationPct: ClampPercent(a.ConfirmationPct),
		DeliveryPct:     ClampPercent(a.DeliveryPct),
	}
}

// ProductMetrics resultado del cálculo de margen. ProfitAtTargetCPA es nil cuando
// el borrador no tiene CPA objetivo.
type ProductMetrics struct {
	Cost                 decimal.Decimal  `json:"cost"`
	CostWithIVA          decimal.Decimal  `json:"cost_with_iva"`
	Shipping             decimal.Decimal  `json:"shipping"`
	GrossProfit          decimal.Decimal  `json:"gross_profit"`
	GrossMarginPct       decimal.Decimal  `json:"gross_margin_pct"`
	CPATesting           decimal.Decimal  `json:"cpa_testing"`
	CPAScaling           decimal.Decimal  `json:"cpa_scaling"`
	TargetCPA            decimal.Decimal  `json:"target_cpa"`
	CommissionPct        decimal.Decimal  `json:"commission_pct"`
	CommissionTesting    decimal.Decimal  `json:"commission_testing"`
	CommissionScaling    decimal.Decimal  `json:"commission_scaling"`
	EffectiveRatePct     decimal.Decimal  `json:"effective_rate_pct"`
	ExpectedRevenue      decimal.Decimal  `json:"expected_revenue"`
	ExpectedProductCost  decimal.Decimal  `json:"expected_product_cost"`
	ExpectedShippingCost decimal.Decimal  `json:"expected_shipping_cost"`
	ExpectedCODProfit    decimal.Decimal  `json:"expected_cod_profit"`
	ProfitTesting        decimal.Decimal  `json:"profit_testing"`
	ProfitScaling        decimal.Decimal  `json:"profit_scaling"`
	ProfitAtTargetCPA    *decimal.Decimal `json:"profit_at_target_cpa"`
}

// SavedProduct producto guardado con la foto de sus métricas al momento de guardar.
// Editar reemplaza el registro completo.
type SavedProduct struct {
	ID          string
	WorkspaceID string
	ProductDraft
	Metrics   ProductMetrics
	CreatedAt time.Time
	UpdatedAt time.Time
}
