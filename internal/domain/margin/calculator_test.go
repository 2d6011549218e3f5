package margin_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/margin"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

// buildDraft producto de referencia: PVP 100000, costo 30000, flete 10000.
func buildDraft(country string) entity.ProductDraft {
	return entity.ProductDraft{
		Name:      "Lámpara LED",
		Country:   country,
		SalePrice: dec("100000"),
		Cost:      dec("30000"),
		Shipping:  dec("10000"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Vector de referencia Colombia, confirmación 90%, entrega 60%:
//
//	tasa efectiva = 0.54
//	ingreso esperado 54000, costo producto 16200, flete 9000 -> COD 28800
//	testeo: CPA 11000 + comisión 1100 -> 16700
//	escala: CPA 8000 + comisión 800   -> 20000
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeMetrics_VectorColombia(t *testing.T) {
	m := margin.ComputeMetrics(buildDraft(market.Colombia), entity.DefaultRateAssumptions())
	require.NotNil(t, m)

	assertDecimal(t, "54", m.EffectiveRatePct, "tasa efectiva")
	assertDecimal(t, "54000", m.ExpectedRevenue, "ingreso esperado")
	assertDecimal(t, "16200", m.ExpectedProductCost, "costo producto esperado")
	assertDecimal(t, "9000", m.ExpectedShippingCost, "flete esperado")
	assertDecimal(t, "28800", m.ExpectedCODProfit, "beneficio COD")
	assertDecimal(t, "11000", m.CPATesting, "CPA testeo")
	assertDecimal(t, "1100", m.CommissionTesting, "comisión testeo")
	assertDecimal(t, "16700", m.ProfitTesting, "profit testeo")
	assertDecimal(t, "8000", m.CPAScaling, "CPA escala")
	assertDecimal(t, "800", m.CommissionScaling, "comisión escala")
	assertDecimal(t, "20000", m.ProfitScaling, "profit escala")

	assertDecimal(t, "30000", m.CostWithIVA, "costo con IVA")
	assertDecimal(t, "60000", m.GrossProfit, "beneficio bruto")
	assertDecimal(t, "60", m.GrossMarginPct, "margen bruto")
	assert.Nil(t, m.ProfitAtTargetCPA, "sin CPA objetivo no hay profit objetivo")
}

func TestComputeMetrics_PrecioCeroEsNil(t *testing.T) {
	d := buildDraft(market.Mexico)
	d.SalePrice = decimal.Zero
	assert.Nil(t, margin.ComputeMetrics(d, entity.DefaultRateAssumptions()))

	d.SalePrice = dec("0.01")
	assert.NotNil(t, margin.ComputeMetrics(d, entity.DefaultRateAssumptions()), "cualquier precio distinto de 0 produce métricas")
}

func TestComputeMetrics_ColombiaIgnoraIVA(t *testing.T) {
	d := buildDraft(market.Colombia)
	without := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())
	d.IncludeIVA = true
	with := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())

	require.NotNil(t, without)
	require.NotNil(t, with)
	assert.True(t, with.CostWithIVA.Equal(without.CostWithIVA), "en Colombia el IVA nunca cambia el costo")
}

func TestComputeMetrics_IVAEnMexicoYEspana(t *testing.T) {
	d := buildDraft(market.Mexico)
	d.IncludeIVA = true
	mx := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())
	require.NotNil(t, mx)
	assertDecimal(t, "34800", mx.CostWithIVA, "México 16%")

	d.Country = market.Spain
	es := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())
	require.NotNil(t, es)
	assertDecimal(t, "36300", es.CostWithIVA, "España 21%")
	assertDecimal(t, "5", es.CommissionPct, "España cobra 5%")
	assertDecimal(t, "550", es.CommissionTesting, "comisión sobre CPA testeo")
}

func TestComputeMetrics_CPAObjetivo(t *testing.T) {
	d := buildDraft(market.Colombia)
	d.TargetCPA = dec("9000")
	m := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())
	require.NotNil(t, m)
	require.NotNil(t, m.ProfitAtTargetCPA)
	// 28800 - 9000 - 900
	assertDecimal(t, "18900", *m.ProfitAtTargetCPA, "profit al CPA objetivo")
}

func TestComputeMetrics_PaisDesconocidoSinComision(t *testing.T) {
	d := buildDraft("peru")
	d.IncludeIVA = true
	m := margin.ComputeMetrics(d, entity.DefaultRateAssumptions())
	require.NotNil(t, m)
	assert.True(t, m.CommissionPct.IsZero())
	assertDecimal(t, "30000", m.CostWithIVA, "sin perfil no hay IVA que aplicar")
	// 28800 - 11000
	assertDecimal(t, "17800", m.ProfitTesting, "profit testeo sin comisión")
}

func TestComputeMetrics_FleteSoloConConfirmacion(t *testing.T) {
	d := buildDraft(market.Colombia)
	m := margin.ComputeMetrics(d, entity.RateAssumptions{
		ConfirmationPct: dec("50"),
		DeliveryPct:     decimal.Zero,
	})
	require.NotNil(t, m)
	assertDecimal(t, "0", m.ExpectedRevenue, "sin entregas no hay ingreso")
	assertDecimal(t, "5000", m.ExpectedShippingCost, "el flete depende solo de la confirmación")
	assertDecimal(t, "-5000", m.ExpectedCODProfit, "beneficio COD negativo")
}

func TestComputeMetrics_PrecioConExponenteEnormeNoSeEvalua(t *testing.T) {
	draft := buildDraft(market.Colombia)
	draft.SalePrice = entity.ParseAmount("1e10000000")

	assert.Nil(t, margin.ComputeMetrics(draft, entity.DefaultRateAssumptions()), "el precio fuera de rango vale 0")
}
