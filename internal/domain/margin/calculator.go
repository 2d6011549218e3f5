// Package margin proyecta margen bruto y rentabilidad contra entrega (COD) de un producto.
package margin

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	// CPA de referencia como fracción del precio de venta.
	cpaTestingShare = decimal.RequireFromString("0.11")
	cpaScalingShare = decimal.RequireFromString("0.08")
)

// ComputeMetrics calcula las métricas de draft para el país indicado con los supuestos
// de confirmación y entrega dados. Devuelve nil si el precio de venta es 0.
//
//	costoConIVA     = costo * (1 + IVA/100) si se pide IVA y el país lo aplica sobre el costo
//	tasaEfectiva    = confirmación/100 * entrega/100
//	beneficioCOD    = precio*tasa - costoConIVA*tasa - flete*confirmación/100
//	profitTesteo    = beneficioCOD - CPA(11%) - comisión agencia sobre ese CPA
//	profitEscala    = beneficioCOD - CPA(8%)  - comisión agencia sobre ese CPA
func ComputeMetrics(draft entity.ProductDraft, assumptions entity.RateAssumptions) *entity.ProductMetrics {
	price := draft.SalePrice
	if price.IsZero() {
		return nil
	}

	rule, _ := market.Rule(draft.Country)
	ivaFactor := one
	if draft.IncludeIVA && rule.TaxesSupplierCost {
		if profile, ok := market.Profile(draft.Country); ok {
			ivaFactor = one.Add(profile.IVAPercent.Div(hundred))
		}
	}

	costWithIVA := draft.Cost.Mul(ivaFactor)
	grossProfit := price.Sub(costWithIVA).Sub(draft.Shipping)
	grossMargin := grossProfit.Div(price).Mul(hundred)

	cpaTesting := price.Mul(cpaTestingShare)
	cpaScaling := price.Mul(cpaScalingShare)

	confirmation := assumptions.ConfirmationPct.Div(hundred)
	delivery := assumptions.DeliveryPct.Div(hundred)
	effective := confirmation.Mul(delivery)

	expectedRevenue := price.Mul(effective)
	expectedProductCost := costWithIVA.Mul(effective)
	expectedShippingCost := draft.Shipping.Mul(confirmation)
	expectedCOD := expectedRevenue.Sub(expectedProductCost).Sub(expectedShippingCost)

	commissionPct := rule.AgencyCommissionPct
	commissionTesting := agencyCommission(cpaTesting, commissionPct)
	commissionScaling := agencyCommission(cpaScaling, commissionPct)

	m := &entity.ProductMetrics{
		Cost:                 draft.Cost,
		CostWithIVA:          costWithIVA,
		Shipping:             draft.Shipping,
		GrossProfit:          grossProfit,
		GrossMarginPct:       grossMargin,
		CPATesting:           cpaTesting,
		CPAScaling:           cpaScaling,
		TargetCPA:            draft.TargetCPA,
		CommissionPct:        commissionPct,
		CommissionTesting:    commissionTesting,
		CommissionScaling:    commissionScaling,
		EffectiveRatePct:     effective.Mul(hundred),
		ExpectedRevenue:      expectedRevenue,
		ExpectedProductCost:  expectedProductCost,
		ExpectedShippingCost: expectedShippingCost,
		ExpectedCODProfit:    expectedCOD,
		ProfitTesting:        expectedCOD.Sub(cpaTesting).Sub(commissionTesting),
		ProfitScaling:        expectedCOD.Sub(cpaScaling).Sub(commissionScaling),
	}

	if draft.TargetCPA.IsPositive() {
		target := expectedCOD.Sub(draft.TargetCPA).Sub(agencyCommission(draft.TargetCPA, commissionPct))
		m.ProfitAtTargetCPA = &target
	}
	return m
}

func agencyCommission(cpa, pct decimal.Decimal) decimal.Decimal {
	return cpa.Mul(pct).Div(hundred)
}
