package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"número", `{"price": 12.5}`, "12.5"},
		{"texto numérico", `{"price": "100000"}`, "100000"},
		{"coma decimal", `{"price": "3,5"}`, "3.5"},
		{"separadores mixtos", `{"price": "1,234.5"}`, "1234.5"},
		{"null", `{"price": null}`, "0"},
		{"texto vacío", `{"price": ""}`, "0"},
		{"texto no numérico", `{"price": "abc"}`, "0"},
		{"campo ausente", `{}`, "0"},
		{"exponente enorme como texto", `{"price": "1e10000000"}`, "0"},
		{"exponente enorme como número", `{"price": 1e10000000}`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body struct {
				Price dto.Amount `json:"price"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.body), &body), "un monto nunca rompe la decodificación")
			assert.True(t, decimal.RequireFromString(tc.want).Equal(body.Price.Dec()), "%s: se obtuvo %s", tc.body, body.Price.Dec())
		})
	}
}

func TestAmount_TextoMalFormadoValeCero(t *testing.T) {
	a := dto.NewAmount(decimal.NewFromInt(7))
	require.NoError(t, a.UnmarshalJSON([]byte(`"sin cerrar`)))
	assert.True(t, a.Dec().IsZero())
}
