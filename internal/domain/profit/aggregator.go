// Package profit calcula el estado de resultados (P&L) de una importación de pedidos.
package profit

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
)

var hundred = decimal.NewFromInt(100)

// Report P&L de una importación en la moneda local de su país. Se calcula en cada
// solicitud y nunca se persiste.
type Report struct {
	entity.AggregateStats

	CountryCode            string          `json:"country_code"`
	LocalCurrency          string          `json:"local_currency"`
	TotalCosts             decimal.Decimal `json:"total_costs"`
	OperatingProfit        decimal.Decimal `json:"operating_profit"`
	ProfitAfterAds         decimal.Decimal `json:"profit_after_ads"`
	FinalProfit            decimal.Decimal `json:"final_profit"`
	TotalAdSpendLocal      decimal.Decimal `json:"total_ad_spend_local"`
	AdSpendAmountLocal     decimal.Decimal `json:"ad_spend_amount_local"`
	AdCommissionLocal      decimal.Decimal `json:"ad_commission_local"`
	AgencyCommissionPct    decimal.Decimal `json:"agency_commission_pct"`
	AdSpendCurrency        string          `json:"ad_spend_currency"`
	ShopifyFeeLocal        decimal.Decimal `json:"shopify_fee_local"`
	CardExpensesLocal      decimal.Decimal `json:"card_expenses_local"`
	OtherExpensesLocal     decimal.Decimal `json:"other_expenses_local"`
	TotalOperatingExpenses decimal.Decimal `json:"total_operating_expenses"`
	RealCPA                decimal.Decimal `json:"real_cpa"`
	ROIPct                 decimal.Decimal `json:"roi_pct"`
	DeliveryRatePct        decimal.Decimal `json:"delivery_rate_pct"`
	// Warnings monedas que no tenían tasa y se convirtieron 1:1.
	Warnings []string `json:"warnings,omitempty"`
}

// ComputeReport calcula el P&L de batch con la configuración de publicidad, gastos
// operativos y tasas vigentes. Devuelve nil si no hay importación o su país no está
// soportado. No modifica ninguna entrada.
func ComputeReport(batch *entity.ImportBatch, adSpend entity.AdSpendConfig, expenses entity.OperatingExpenses, rates currency.RateTable) *Report {
	if batch == nil {
		return nil
	}
	profile, ok := market.Profile(batch.Country)
	if !ok {
		return nil
	}
	local := profile.CurrencyCode
	conv := currency.NewConverter(rates)

	commissionPct := decimal.Zero
	if adSpend.UsesAgency {
		rule, _ := market.Rule(batch.Country)
		commissionPct = rule.AgencyCommissionPct
	}
	adCommission := adSpend.Amount.Mul(commissionPct).Div(hundred)
	totalAdSpend := adSpend.Amount.Add(adCommission)

	// Tres conversiones independientes: la vista muestra el gasto con y sin comisión.
	totalAdSpendLocal := conv.Convert(totalAdSpend, adSpend.Currency, local)
	adAmountLocal := conv.Convert(adSpend.Amount, adSpend.Currency, local)
	adCommissionLocal := conv.Convert(adCommission, adSpend.Currency, local)

	shopifyLocal := conv.Convert(expenses.ShopifyUSD, currency.USD, local)
	cardsLocal := decimal.Zero
	for _, card := range expenses.CardExpenses {
		cardsLocal = cardsLocal.Add(conv.Convert(card.Amount, card.Currency, local))
	}
	totalOpEx := shopifyLocal.Add(cardsLocal).Add(expenses.Other)

	stats := batch.Stats
	totalCosts := stats.ProductCost.Add(stats.ShippingCost).Add(stats.ReturnShipping)
	operatingProfit := stats.BilledRevenue.Sub(totalCosts)
	profitAfterAds := operatingProfit.Sub(totalAdSpendLocal)
	finalProfit := profitAfterAds.Sub(totalOpEx)

	roi := decimal.Zero
	if spend := totalAdSpendLocal.Add(totalOpEx); spend.IsPositive() {
		roi = finalProfit.Div(spend).Mul(hundred)
	}
	realCPA := decimal.Zero
	if stats.TotalOrders > 0 {
		realCPA = totalAdSpendLocal.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
	}
	deliveryRate := decimal.Zero
	if stats.Shipped > 0 {
		deliveryRate = decimal.NewFromInt(int64(stats.Delivered)).
			Div(decimal.NewFromInt(int64(stats.Shipped))).
			Mul(hundred)
	}

	return &Report{
		AggregateStats:         stats,
		CountryCode:            profile.Code,
		LocalCurrency:          local,
		TotalCosts:             totalCosts,
		OperatingProfit:        operatingProfit,
		ProfitAfterAds:         profitAfterAds,
		FinalProfit:            finalProfit,
		TotalAdSpendLocal:      totalAdSpendLocal,
		AdSpendAmountLocal:     adAmountLocal,
		AdCommissionLocal:      adCommissionLocal,
		AgencyCommissionPct:    commissionPct,
		AdSpendCurrency:        adSpend.Currency,
		ShopifyFeeLocal:        shopifyLocal,
		CardExpensesLocal:      cardsLocal,
		OtherExpensesLocal:     expenses.Other,
		TotalOperatingExpenses: totalOpEx,
		RealCPA:                realCPA,
		ROIPct:                 roi,
		DeliveryRatePct:        deliveryRate,
		Warnings:               conv.Missing(),
	}
}
