package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// Amount monto numérico que acepta número JSON o texto libre ("12.500", "3,5", "").
// Un valor que no se puede interpretar vale 0; nunca produce error de decodificación.
type Amount struct {
	decimal.Decimal
}

// NewAmount envuelve d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	var text string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
	} else {
		text = string(data)
	}
	a.Decimal = entity.ParseAmount(text)
	return nil
}

// Dec devuelve el decimal subyacente.
func (a Amount) Dec() decimal.Decimal {
	return a.Decimal
}
