package profit_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/internal/domain/profit"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

// buildBatch importación de referencia en Colombia (COP).
func buildBatch(country string) *entity.ImportBatch {
	return &entity.ImportBatch{
		ID:       1735689600000,
		Country:  country,
		FileName: "pedidos-enero.xlsx",
		Stats: entity.AggregateStats{
			TotalOrders:     100,
			Delivered:       60,
			Rejected:        5,
			Cancelled:       10,
			OfficeClaims:    5,
			Shipped:         80,
			BilledRevenue:   dec("6000000"),
			ProductCost:     dec("1800000"),
			ShippingCost:    dec("900000"),
			ReturnShipping:  dec("100000"),
			IncidentRevenue: dec("50000"),
		},
	}
}

func buildAdSpend() entity.AdSpendConfig {
	return entity.AdSpendConfig{Amount: dec("500"), Currency: "USD", UsesAgency: true}
}

func buildExpenses() entity.OperatingExpenses {
	return entity.OperatingExpenses{
		ShopifyUSD: dec("39"),
		CardExpenses: []entity.CardExpense{
			{ID: "a", Name: "Dominio", Amount: dec("10"), Currency: "EUR"},
			{ID: "b", Name: "Apps", Amount: dec("20"), Currency: "USD"},
		},
		Other: dec("50000"),
	}
}

func TestComputeReport_SinImportacionEsNil(t *testing.T) {
	assert.Nil(t, profit.ComputeReport(nil, buildAdSpend(), buildExpenses(), currency.DefaultRates()))
	assert.Nil(t, profit.ComputeReport(buildBatch("peru"), buildAdSpend(), buildExpenses(), currency.DefaultRates()),
		"país sin perfil no tiene moneda local")
}

func TestComputeReport_VectorColombia(t *testing.T) {
	r := profit.ComputeReport(buildBatch(market.Colombia), buildAdSpend(), buildExpenses(), currency.DefaultRates())
	require.NotNil(t, r)

	assert.Equal(t, "COP", r.LocalCurrency)
	assert.Equal(t, "colombia", r.CountryCode)
	assertDecimal(t, "10", r.AgencyCommissionPct, "comisión agencia")
	assertDecimal(t, "2200000", r.TotalAdSpendLocal, "(500 + 50) USD * 4000")
	assertDecimal(t, "2000000", r.AdSpendAmountLocal, "500 USD * 4000")
	assertDecimal(t, "200000", r.AdCommissionLocal, "50 USD * 4000")

	assertDecimal(t, "156000", r.ShopifyFeeLocal, "39 USD * 4000")
	// 10 EUR / 0.92 * 4000 + 20 USD * 4000
	expectedCards := dec("10").Div(dec("0.92")).Mul(dec("4000")).Add(dec("80000"))
	assertDecimal(t, expectedCards.String(), r.CardExpensesLocal, "tarjetas")
	assertDecimal(t, "50000", r.OtherExpensesLocal, "otros gastos sin conversión")

	assertDecimal(t, "2800000", r.TotalCosts, "costos totales")
	assertDecimal(t, "3200000", r.OperatingProfit, "beneficio operativo")
	assertDecimal(t, "1000000", r.ProfitAfterAds, "beneficio tras publicidad")
	assertDecimal(t, "22000", r.RealCPA, "CPA real = gasto / pedidos")
	assertDecimal(t, "75", r.DeliveryRatePct, "60 de 80 enviados")
	assert.Empty(t, r.Warnings)
	assert.Equal(t, 100, r.TotalOrders, "el reporte incluye las estadísticas crudas")
}

func TestComputeReport_SinAgenciaNoHayComision(t *testing.T) {
	ad := buildAdSpend()
	ad.UsesAgency = false
	for _, country := range []string{market.Colombia, market.Mexico, market.Spain} {
		r := profit.ComputeReport(buildBatch(country), ad, buildExpenses(), currency.DefaultRates())
		require.NotNil(t, r)
		assert.True(t, r.AgencyCommissionPct.IsZero(), "%s: sin agencia la comisión es 0", country)
		assert.True(t, r.AdCommissionLocal.IsZero(), "%s: comisión local 0", country)
	}
}

func TestComputeReport_ComisionEspana(t *testing.T) {
	ad := entity.AdSpendConfig{Amount: dec("1000"), Currency: "EUR", UsesAgency: true}
	r := profit.ComputeReport(buildBatch(market.Spain), ad, entity.OperatingExpenses{}, currency.DefaultRates())
	require.NotNil(t, r)
	assertDecimal(t, "5", r.AgencyCommissionPct, "España 5%")
	assertDecimal(t, "1050", r.TotalAdSpendLocal, "EUR a EUR no convierte")
	assertDecimal(t, "50", r.AdCommissionLocal, "comisión")
}

func TestComputeReport_IdentidadProfitFinal(t *testing.T) {
	rates := currency.RateTable{"COP": dec("3987.35"), "MXN": dec("17.21"), "EUR": dec("0.9134")}
	ads := []entity.AdSpendConfig{
		buildAdSpend(),
		{Amount: dec("12345.67"), Currency: "MXN", UsesAgency: true},
		{Amount: dec("0"), Currency: "EUR"},
	}
	for _, country := range []string{market.Colombia, market.Mexico, market.Spain} {
		for _, ad := range ads {
			r := profit.ComputeReport(buildBatch(country), ad, buildExpenses(), rates)
			require.NotNil(t, r)
			want := r.BilledRevenue.Sub(r.TotalCosts).Sub(r.TotalAdSpendLocal).Sub(r.TotalOperatingExpenses)
			assert.True(t, r.FinalProfit.Equal(want), "%s/%s: la identidad del profit final debe ser exacta", country, ad.Currency)
		}
	}
}

func TestComputeReport_ROICeroSinGasto(t *testing.T) {
	r := profit.ComputeReport(buildBatch(market.Colombia), entity.AdSpendConfig{Amount: decimal.Zero, Currency: "USD"},
		entity.OperatingExpenses{}, currency.DefaultRates())
	require.NotNil(t, r)
	assert.False(t, r.FinalProfit.IsZero())
	assert.True(t, r.ROIPct.IsZero(), "sin gasto el ROI es 0 aunque haya profit")
	assert.True(t, r.RealCPA.IsZero())
}

func TestComputeReport_ROI(t *testing.T) {
	ad := entity.AdSpendConfig{Amount: dec("250"), Currency: "USD"}
	r := profit.ComputeReport(buildBatch(market.Colombia), ad, entity.OperatingExpenses{}, currency.DefaultRates())
	require.NotNil(t, r)
	// profit final 3200000 - 1000000 = 2200000 sobre gasto 1000000
	assertDecimal(t, "2200000", r.FinalProfit, "profit final")
	assertDecimal(t, "220", r.ROIPct, "ROI")
}

func TestComputeReport_Reproducible(t *testing.T) {
	batch := buildBatch(market.Mexico)
	ad := buildAdSpend()
	exp := buildExpenses()
	rates := currency.DefaultRates()

	a, err := json.Marshal(profit.ComputeReport(batch, ad, exp, rates))
	require.NoError(t, err)
	b, err := json.Marshal(profit.ComputeReport(batch, ad, exp, rates))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b), "mismas entradas deben producir el mismo reporte")
	assert.Len(t, exp.CardExpenses, 2, "las entradas no se modifican")
	assertDecimal(t, "500", ad.Amount, "el gasto no se modifica")
}

func TestComputeReport_TasaFaltanteSeReporta(t *testing.T) {
	exp := entity.OperatingExpenses{CardExpenses: []entity.CardExpense{{ID: "x", Amount: dec("100"), Currency: "ARS"}}}
	r := profit.ComputeReport(buildBatch(market.Colombia), entity.AdSpendConfig{Currency: "USD"}, exp, currency.DefaultRates())
	require.NotNil(t, r)
	assert.Equal(t, []string{"ARS"}, r.Warnings)
	assertDecimal(t, "400000", r.CardExpensesLocal, "ARS se convierte 1:1 a USD y luego a COP")
}
