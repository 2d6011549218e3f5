// Package currency convierte montos entre monedas usando una tabla de "unidades por 1 USD".
package currency

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// USD es la moneda pivote implícita de toda tabla de tasas.
const USD = "USD"

// RateTable mapea código de moneda -> unidades de esa moneda por 1 USD.
// USD nunca se almacena: su tasa es 1 por definición.
type RateTable map[string]decimal.Decimal

// DefaultRates tasas de referencia para espacios de trabajo nuevos.
func DefaultRates() RateTable {
	return RateTable{
		"COP": decimal.NewFromInt(4000),
		"MXN": decimal.RequireFromString("17.5"),
		"EUR": decimal.RequireFromString("0.92"),
	}
}

// rate devuelve la tasa de code y si existía. Tasas ausentes, cero o negativas
// se reemplazan por 1.
func (t RateTable) rate(code string) (decimal.Decimal, bool) {
	r, ok := t[code]
	if !ok || !r.IsPositive() {
		return decimal.NewFromInt(1), false
	}
	return r, true
}

// Clone copia la tabla.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Normalize devuelve una copia con códigos en mayúscula y sin la entrada USD.
func (t RateTable) Normalize() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		code := strings.ToUpper(strings.TrimSpace(k))
		if code == "" || code == USD {
			continue
		}
		out[code] = v
	}
	return out
}

// Convert convierte amount de from a to.
//
//	from == to       -> amount
//	to == USD        -> amount / rates[from]
//	from == USD      -> amount * rates[to]
//	cualquier otro   -> amount / rates[from] * rates[to]
//
// Una tasa ausente se toma como 1 sin error. No redondea.
func Convert(amount decimal.Decimal, from, to string, rates RateTable) decimal.Decimal {
	return convert(amount, from, to, rates, nil)
}

func convert(amount decimal.Decimal, from, to string, rates RateTable, onMissing func(string)) decimal.Decimal {
	if from == to {
		return amount
	}
	lookup := func(code string) decimal.Decimal {
		r, ok := rates.rate(code)
		if !ok && onMissing != nil {
			onMissing(code)
		}
		return r
	}
	switch {
	case to == USD:
		return amount.Div(lookup(from))
	case from == USD:
		return amount.Mul(lookup(to))
	default:
		return amount.Div(lookup(from)).Mul(lookup(to))
	}
}

// Converter aplica Convert sobre una tabla fija y registra las monedas que cayeron
// en la tasa 1:1. Los resultados numéricos son idénticos a Convert.
// No es seguro para uso concurrente.
type Converter struct {
	rates   RateTable
	missing map[string]struct{}
}

// NewConverter crea un conversor sobre rates.
func NewConverter(rates RateTable) *Converter {
	return &Converter{rates: rates, missing: make(map[string]struct{})}
}

// Convert ver función Convert.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return convert(amount, from, to, c.rates, func(code string) {
		c.missing[code] = struct{}{}
	})
}

// Missing monedas sin tasa usadas hasta ahora, ordenadas.
func (c *Converter) Missing() []string {
	if len(c.missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.missing))
	for code := range c.missing {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
