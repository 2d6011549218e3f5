package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
	"github.com/jhoicas/Coinnecta-api/pkg/numfmt"
)

const dashboardHistorySize = 10 // importaciones en la gráfica de evolución

// DashboardUseCase arma el resumen del dashboard: P&L activo y evolución del profit.
type DashboardUseCase struct {
	reports      *ReportUseCase
	importRepo   repository.ImportBatchRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	defaultRates currency.RateTable
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reports *ReportUseCase,
	importRepo repository.ImportBatchRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	defaultRates currency.RateTable,
) *DashboardUseCase {
	return &DashboardUseCase{
		reports:      reports,
		importRepo:   importRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		defaultRates: defaultRates,
	}
}

// GetSummary construye el DashboardSummaryDTO del espacio de trabajo.
//
// Tres lecturas en paralelo:
//  1. P&L de la importación activa (nil si no hay)
//  2. Historial + configuración → evolución del profit (últimas 10) e ImportCount
//  3. Productos guardados → ProductCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context, workspaceID string) (*dto.DashboardSummaryDTO, error) {
	type activeResult struct {
		report *dto.ProfitReportResponse
		err    error
	}
	type historyResult struct {
		points []dto.ProfitPointDTO
		total  int
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	activeCh := make(chan activeResult, 1)
	historyCh := make(chan historyResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		r, err := uc.reports.GetReport(ctx, workspaceID, 0)
		if errors.Is(err, domain.ErrNoActiveImport) {
			err = nil
		}
		activeCh <- activeResult{r, err}
	}()
	go func() {
		points, total, err := uc.profitHistory(ctx, workspaceID)
		historyCh <- historyResult{points, total, err}
	}()
	go func() {
		list, err := uc.productRepo.ListByWorkspace(ctx, workspaceID, "")
		countCh <- countResult{len(list), err}
	}()

	active := <-activeCh
	history := <-historyCh
	count := <-countCh

	if active.err != nil {
		return nil, fmt.Errorf("dashboard: reporte activo: %w", active.err)
	}
	if history.err != nil {
		return nil, fmt.Errorf("dashboard: evolución: %w", history.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", count.err)
	}

	return &dto.DashboardSummaryDTO{
		ActiveReport:  active.report,
		ProfitHistory: history.points,
		MaxAbsProfit:  maxAbsProfit(history.points),
		ImportCount:   history.total,
		ProductCount:  count.n,
	}, nil
}

// profitHistory profit final de las últimas importaciones en orden cronológico y el
// total de importaciones del espacio.
func (uc *DashboardUseCase) profitHistory(ctx context.Context, workspaceID string) ([]dto.ProfitPointDTO, int, error) {
	cfg, err := settings.Load(ctx, uc.settingsRepo, workspaceID, uc.defaultRates)
	if err != nil {
		return nil, 0, err
	}
	all, err := uc.importRepo.List(ctx, workspaceID, 0)
	if err != nil {
		return nil, 0, err
	}
	list := all
	if len(list) > dashboardHistorySize {
		list = list[:dashboardHistorySize]
	}

	points := make([]dto.ProfitPointDTO, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		b := list[i]
		report := computeReport(b, cfg)
		if report == nil {
			continue
		}
		points = append(points, dto.ProfitPointDTO{
			ImportID:  b.ID,
			Label:     b.Label(),
			DateLabel: numfmt.ShortDate(b.CreatedAt),
			Currency:  report.LocalCurrency,
			Profit:    report.FinalProfit,
		})
	}
	return points, len(all), nil
}

// maxAbsProfit escala de la gráfica; nunca menor que 1.
func maxAbsProfit(points []dto.ProfitPointDTO) decimal.Decimal {
	maxAbs := decimal.NewFromInt(1)
	for _, p := range points {
		if abs := p.Profit.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}
	return maxAbs
}
