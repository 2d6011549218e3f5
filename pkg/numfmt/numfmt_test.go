package numfmt_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Coinnecta-api/pkg/numfmt"
)

func TestAmount_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "1.234.567", numfmt.Amount(decimal.RequireFromString("1234567.4")))
	assert.Equal(t, "-20.000", numfmt.Amount(decimal.NewFromInt(-20000)))
	assert.Equal(t, "$ 50.000", numfmt.Money("$", decimal.NewFromInt(50000)))
}

func TestDecimal_ComaDecimal(t *testing.T) {
	assert.Equal(t, "12.345,50", numfmt.Decimal(decimal.RequireFromString("12345.5")))
}

func TestFechas(t *testing.T) {
	d := time.Date(2025, time.January, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 ene", numfmt.ShortDate(d))
	assert.Equal(t, "enero de 2025", numfmt.MonthYear(d))
	assert.Equal(t, "12 sept", numfmt.ShortDate(time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)))
}
