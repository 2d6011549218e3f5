package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Límites del texto numérico aceptado. Fuera de ellos el monto vale 0, igual que
// cualquier otro texto no interpretable.
const (
	maxAmountChars    = 40
	maxAmountExponent = 20
)

// ParseAmount convierte texto libre ingresado por el usuario en un monto.
// Acepta coma como separador decimal cuando no hay punto. Cualquier texto no
// numérico (incluido el vacío) vale 0, y también los valores cuyo exponente
// decimal sale de ±20 ("1e10000000", "1e-300").
func ParseAmount(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || len(s) > maxAmountChars {
		return decimal.Zero
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	return d
}

// ClampPercent limita p al rango [0, 100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
