// Package numfmt formatea montos y fechas en español (es-ES) para reportes y gráficas.
package numfmt

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var longMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Amount monto redondeado a entero con separador de miles: 1.234.567
func Amount(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// Decimal monto con dos decimales: 12.345,50
func Decimal(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Money monto entero precedido del símbolo: $ 1.234.567
func Money(symbol string, d decimal.Decimal) string {
	return symbol + " " + Amount(d)
}

// Percent porcentaje con un decimal: 75,0%
func Percent(d decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", d.Round(1).InexactFloat64())
}

// ShortDate día y mes abreviado: "3 ene".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[t.Month()-1])
}

// MonthYear mes y año: "enero de 2025".
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%s de %d", longMonths[t.Month()-1], t.Year())
}
