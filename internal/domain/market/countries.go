// Package market contiene la tabla estática de países soportados y sus reglas comerciales.
// Agregar un mercado es agregar una entrada en profiles y otra en rules; ningún cálculo
// compara códigos de país directamente.
package market

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Códigos de país soportados.
const (
	Colombia = "colombia"
	Mexico   = "mexico"
	Spain    = "espana"
)

// CountryProfile describe un mercado: moneda local, símbolo y tasa de IVA.
type CountryProfile struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	CurrencyCode   string          `json:"currency"`
	CurrencySymbol string          `json:"symbol"`
	Flag           string          `json:"flag"`
	IVAPercent     decimal.Decimal `json:"iva"`
}

// MarketRule reglas por país que alimentan los cálculos de margen y P&L.
// AgencyCommissionPct se cobra sobre el CPA (margen) o sobre el gasto publicitario (P&L).
// TaxesSupplierCost indica si el IVA se suma al costo del proveedor cuando se pide.
type MarketRule struct {
	AgencyCommissionPct decimal.Decimal
	AgencyCurrency      string
	TaxesSupplierCost   bool
}

var profiles = map[string]CountryProfile{
	Colombia: {Code: Colombia, Name: "Colombia", CurrencyCode: "COP", CurrencySymbol: "$", Flag: "🇨🇴", IVAPercent: decimal.NewFromInt(19)},
	Mexico:   {Code: Mexico, Name: "México", CurrencyCode: "MXN", CurrencySymbol: "$", Flag: "🇲🇽", IVAPercent: decimal.NewFromInt(16)},
	Spain:    {Code: Spain, Name: "España", CurrencyCode: "EUR", CurrencySymbol: "€", Flag: "🇪🇸", IVAPercent: decimal.NewFromInt(21)},
}

// En Colombia el costo del proveedor ya viene con IVA.
var rules = map[string]MarketRule{
	Colombia: {AgencyCommissionPct: decimal.NewFromInt(10), AgencyCurrency: "USD", TaxesSupplierCost: false},
	Mexico:   {AgencyCommissionPct: decimal.NewFromInt(10), AgencyCurrency: "USD", TaxesSupplierCost: true},
	Spain:    {AgencyCommissionPct: decimal.NewFromInt(5), AgencyCurrency: "EUR", TaxesSupplierCost: true},
}

// Profile devuelve el perfil del país. El código no distingue mayúsculas.
func Profile(code string) (CountryProfile, bool) {
	p, ok := profiles[normalizeCode(code)]
	return p, ok
}

// Rule devuelve la regla comercial del país. Para países desconocidos devuelve la regla
// neutra (sin comisión, con IVA sobre el costo) y ok=false.
func Rule(code string) (MarketRule, bool) {
	r, ok := rules[normalizeCode(code)]
	if !ok {
		return MarketRule{AgencyCommissionPct: decimal.Zero, TaxesSupplierCost: true}, false
	}
	return r, true
}

// Profiles lista los países soportados ordenados por código.
func Profiles() []CountryProfile {
	out := make([]CountryProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// IsSupported indica si el país tiene perfil.
func IsSupported(code string) bool {
	_, ok := profiles[normalizeCode(code)]
	return ok
}

// Currencies devuelve las monedas locales de los países soportados (sin USD).
func Currencies() []string {
	out := make([]string, 0, len(profiles))
	for _, p := range Profiles() {
		out = append(out, p.CurrencyCode)
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
