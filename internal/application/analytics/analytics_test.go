package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/application/analytics"
	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/memory"
)

const wsID = "ws-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store     *memory.Store
	reports   *analytics.ReportUseCase
	dashboard *analytics.DashboardUseCase
	history   *analytics.HistoryUseCase
	pdf       *fakePDF
}

type fakePDF struct {
	business string
	report   *dto.ProfitReportResponse
}

func (f *fakePDF) GenerateReport(report *dto.ProfitReportResponse, businessName string) ([]byte, error) {
	f.business, f.report = businessName, report
	return []byte("%PDF-1.4"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Workspaces().Create(context.Background(), &entity.Workspace{
		ID: wsID, BusinessName: "Tienda Uno", Status: "active",
	}))
	rates := currency.DefaultRates()
	pdf := &fakePDF{}
	reports := analytics.NewReportUseCase(store.Imports(), store.Workspaces(), store.Settings(), rates, pdf)
	return &fixture{
		store:     store,
		reports:   reports,
		dashboard: analytics.NewDashboardUseCase(reports, store.Imports(), store.Products(), store.Settings(), rates),
		history:   analytics.NewHistoryUseCase(store.Imports(), store.Workspaces(), store.Settings(), rates),
		pdf:       pdf,
	}
}

// addImport crea una importación con profit final 600.000 (sin publicidad ni gastos).
func (f *fixture) addImport(t *testing.T, id int64, country string, at time.Time) {
	t.Helper()
	require.NoError(t, f.store.Imports().Create(context.Background(), &entity.ImportBatch{
		ID:          id,
		WorkspaceID: wsID,
		Country:     country,
		FileName:    "pedidos.xlsx",
		CreatedAt:   at,
		Stats: entity.AggregateStats{
			TotalOrders:   10,
			Delivered:     6,
			Shipped:       8,
			BilledRevenue: dec("1000000"),
			ProductCost:   dec("300000"),
			ShippingCost:  dec("100000"),
		},
	}))
}

func TestGetReport_SinImportacionActiva(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.GetReport(context.Background(), wsID, 0)
	assert.True(t, errors.Is(err, domain.ErrNoActiveImport))

	_, err = f.reports.GetReport(context.Background(), wsID, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetReport_ImportacionActiva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addImport(t, 1000, "colombia", time.Now())
	f.addImport(t, 2000, "mexico", time.Now())
	require.NoError(t, f.store.Workspaces().SetActiveImport(ctx, wsID, 1000))

	res, err := f.reports.GetReport(ctx, wsID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Import.ID)
	assert.True(t, res.Import.Active)
	assert.Equal(t, "COP", res.Report.LocalCurrency)
	assert.True(t, res.Report.FinalProfit.Equal(dec("600000")), "obtenido %s", res.Report.FinalProfit)
	assert.Empty(t, res.Report.Warnings)

	res, err = f.reports.GetReport(ctx, wsID, 2000)
	require.NoError(t, err)
	assert.False(t, res.Import.Active)
	assert.Equal(t, "MXN", res.Report.LocalCurrency)
}

func TestGetReport_MonedaSinTasaGeneraAdvertencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addImport(t, 1000, "colombia", time.Now())
	require.NoError(t, f.store.Workspaces().SetActiveImport(ctx, wsID, 1000))

	cfg := entity.DefaultSettings(wsID, currency.DefaultRates())
	cfg.AdSpend = entity.AdSpendConfig{Amount: dec("1000"), Currency: "ARS"}
	require.NoError(t, f.store.Settings().Save(ctx, cfg))

	res, err := f.reports.GetReport(ctx, wsID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ARS"}, res.Report.Warnings)
	// ARS sin tasa vale 1 USD → 4000 COP
	assert.True(t, res.Report.TotalAdSpendLocal.Equal(dec("4000000")), "obtenido %s", res.Report.TotalAdSpendLocal)
}

func TestDownloadPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addImport(t, 1000, "colombia", time.Now())

	content, name, err := f.reports.DownloadPDF(ctx, wsID, 1000)
	require.NoError(t, err)
	assert.Equal(t, "reporte-1000.pdf", name)
	assert.Equal(t, "%PDF-1.4", string(content))
	assert.Equal(t, "Tienda Uno", f.pdf.business)
	require.NotNil(t, f.pdf.report)
	assert.Equal(t, int64(1000), f.pdf.report.Import.ID)
}

func TestDashboard_SinImportaciones(t *testing.T) {
	f := newFixture(t)
	sum, err := f.dashboard.GetSummary(context.Background(), wsID)
	require.NoError(t, err)
	assert.Nil(t, sum.ActiveReport)
	assert.Empty(t, sum.ProfitHistory)
	assert.True(t, sum.MaxAbsProfit.Equal(decimal.NewFromInt(1)), "la escala nunca es menor que 1")
	assert.Zero(t, sum.ImportCount)
	assert.Zero(t, sum.ProductCount)
}

func TestDashboard_UltimasDiezEnOrdenCronologico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 12; i++ {
		f.addImport(t, int64(i), "colombia", base.AddDate(0, 0, i))
	}
	require.NoError(t, f.store.Workspaces().SetActiveImport(ctx, wsID, 12))
	require.NoError(t, f.store.Products().Create(ctx, &entity.SavedProduct{ID: "p1", WorkspaceID: wsID}))

	sum, err := f.dashboard.GetSummary(ctx, wsID)
	require.NoError(t, err)
	require.NotNil(t, sum.ActiveReport)
	assert.Equal(t, int64(12), sum.ActiveReport.Import.ID)
	assert.Equal(t, 12, sum.ImportCount)
	assert.Equal(t, 1, sum.ProductCount)

	require.Len(t, sum.ProfitHistory, 10)
	assert.Equal(t, int64(3), sum.ProfitHistory[0].ImportID, "la más antigua de las 10 primero")
	assert.Equal(t, int64(12), sum.ProfitHistory[9].ImportID)
	assert.Equal(t, "4 ene", sum.ProfitHistory[0].DateLabel)
	assert.Equal(t, "COP", sum.ProfitHistory[0].Currency)
	assert.True(t, sum.MaxAbsProfit.Equal(dec("600000")))
}

func TestHistory_AgrupaPorSemanaISO(t *testing.T) {
	f := newFixture(t)
	f.addImport(t, 1, "colombia", time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)) // lunes, semana 1 de 2025
	f.addImport(t, 2, "colombia", time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC))   // domingo, misma semana
	f.addImport(t, 3, "mexico", time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC))     // semana 2

	res, err := f.history.Grouped(context.Background(), wsID, dto.HistoryByWeek)
	require.NoError(t, err)
	assert.Equal(t, dto.HistoryByWeek, res.Mode)
	require.Len(t, res.Groups, 2)

	assert.Equal(t, "2025-W2", res.Groups[0].Key)
	assert.Equal(t, "Semana del 6 ene al 12 ene", res.Groups[0].Label)

	g := res.Groups[1]
	assert.Equal(t, "2025-W1", g.Key)
	assert.Equal(t, "Semana del 30 dic al 5 ene", g.Label)
	require.Len(t, g.Items, 2)
	assert.Equal(t, int64(2), g.Items[0].Import.ID)
	assert.True(t, g.TotalProfits["COP"].Equal(dec("1200000")))
}

func TestHistory_PorMesSeparaMonedas(t *testing.T) {
	f := newFixture(t)
	f.addImport(t, 1, "colombia", time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC))
	f.addImport(t, 2, "mexico", time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC))
	f.addImport(t, 3, "espana", time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))

	res, err := f.history.Grouped(context.Background(), wsID, dto.HistoryByMonth)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "febrero de 2025", res.Groups[0].Label)
	assert.Equal(t, "enero de 2025", res.Groups[1].Label)
	assert.Len(t, res.Groups[1].TotalProfits, 2)
	assert.True(t, res.Groups[1].TotalProfits["MXN"].Equal(dec("600000")))

	res, err = f.history.Grouped(context.Background(), wsID, dto.HistoryByYear)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "2025", res.Groups[0].Label)
	assert.Len(t, res.Groups[0].Items, 3)
}

func TestHistory_SinModoAgrupaPorMes(t *testing.T) {
	f := newFixture(t)
	f.addImport(t, 1, "colombia", time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC))
	f.addImport(t, 2, "colombia", time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC))

	res, err := f.history.Grouped(context.Background(), wsID, "")
	require.NoError(t, err)
	assert.Equal(t, dto.HistoryByMonth, res.Mode)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "2025-01", res.Groups[0].Key)
	assert.Len(t, res.Groups[0].Items, 2)
}

func TestHistory_ModoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.history.Grouped(context.Background(), wsID, "day")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
