// Package pdf exporta el estado de resultados (P&L) de una importación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + importación  │  País + moneda + fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PEDIDOS: totales por estatus                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA P&L: Concepto | Monto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: ROI / CPA real / Tasa de entrega               │
//	│  FOOTER: monedas sin tasa (si las hay)                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorPositive = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReport genera el PDF del P&L y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReport(res *dto.ProfitReportResponse, businessName string) ([]byte, error) {
	if res == nil || res.Report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	symbol := "$"
	if p, ok := market.Profile(res.Report.CountryCode); ok {
		symbol = p.CurrencySymbol
	}
	money := func(d decimal.Decimal) string { return numfmt.Money(symbol, d) }

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de resultados", true).
		WithAuthor(nonEmpty(businessName, "Coinnecta"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(res, businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(ordersRow(res))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ESTADO DE RESULTADOS"))
	for _, r := range pnlRows(res, money) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(kpiRow(res, money))

	if len(res.Report.Warnings) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin tasa de cambio (convertido 1:1): "+strings.Join(res.Report.Warnings, ", "), props.Text{
				Size: 7.5, Color: colorNegative, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + importación (izq) y país, moneda y fecha (der).
func headerRow(res *dto.ProfitReportResponse, businessName string) core.Row {
	country := res.Report.CountryCode
	if p, ok := market.Profile(country); ok {
		country = p.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(businessName, "Coinnecta"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(res.Import.Label, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ESTADO DE RESULTADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s · %s", country, res.Report.LocalCurrency), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Importado: "+res.Import.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// ordersRow: conteo de pedidos por estatus.
func ordersRow(res *dto.ProfitReportResponse) core.Row {
	s := res.Report.AggregateStats
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PEDIDOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf(
				"Total: %d  |  Enviados: %d  |  Entregados: %d  |  Rechazados: %d  |  Cancelados: %d  |  Reclame en oficina: %d",
				s.TotalOrders, s.Shipped, s.Delivered, s.Rejected, s.Cancelled, s.OfficeClaims,
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf(
				"Novedades: %d  |  Devolución en tránsito: %d  |  Rehusados en almacén: %d  |  En ruta: %d",
				s.Incidents, s.InTransitRefused, s.ReceivedRefused, s.InRoute,
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// pnlLine concepto del estado de resultados. Los subtotales van en negrita.
type pnlLine struct {
	label    string
	amount   decimal.Decimal
	subtotal bool
}

func pnlRows(res *dto.ProfitReportResponse, money func(decimal.Decimal) string) []core.Row {
	r := res.Report
	adLabel := "Publicidad"
	if r.AgencyCommissionPct.IsPositive() {
		adLabel = fmt.Sprintf("Publicidad (incluye %s%% agencia)", r.AgencyCommissionPct.String())
	}
	lines := []pnlLine{
		{label: "Ventas facturadas (entregados)", amount: r.BilledRevenue},
		{label: "Costo de producto", amount: r.ProductCost.Neg()},
		{label: "Fletes", amount: r.ShippingCost.Neg()},
		{label: "Fletes de devolución", amount: r.ReturnShipping.Neg()},
		{label: "Beneficio operativo", amount: r.OperatingProfit, subtotal: true},
		{label: adLabel, amount: r.TotalAdSpendLocal.Neg()},
		{label: "Beneficio después de publicidad", amount: r.ProfitAfterAds, subtotal: true},
		{label: "Shopify", amount: r.ShopifyFeeLocal.Neg()},
		{label: "Gastos con tarjeta", amount: r.CardExpensesLocal.Neg()},
		{label: "Otros gastos", amount: r.OtherExpensesLocal.Neg()},
		{label: "PROFIT FINAL", amount: r.FinalProfit, subtotal: true},
	}

	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := fontstyle.Normal
		color := colorGray
		if l.subtotal {
			style = fontstyle.Bold
			color = colorPositive
			if l.amount.IsNegative() {
				color = colorNegative
			}
		}
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(l.label, props.Text{Size: 9, Style: style, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money(l.amount), props.Text{
				Size: 9, Style: style, Align: align.Right, Color: color, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// kpiRow: ROI, CPA real y tasa de entrega.
func kpiRow(res *dto.ProfitReportResponse, money func(decimal.Decimal) string) core.Row {
	r := res.Report
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7.5, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 7}),
		)
	}
	return row.New(16).Add(
		kpi("ROI", numfmt.Percent(r.ROIPct)),
		kpi("CPA real", money(r.RealCPA)),
		kpi("Tasa de entrega", numfmt.Percent(r.DeliveryRatePct)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
