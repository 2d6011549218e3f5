package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
	"github.com/jhoicas/Coinnecta-api/pkg/numfmt"
)

// HistoryUseCase agrupa el historial de importaciones por semana, mes o año.
type HistoryUseCase struct {
	importRepo    repository.ImportBatchRepository
	workspaceRepo repository.WorkspaceRepository
	settingsRepo  repository.SettingsRepository
	defaultRates  currency.RateTable
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	importRepo repository.ImportBatchRepository,
	workspaceRepo repository.WorkspaceRepository,
	settingsRepo repository.SettingsRepository,
	defaultRates currency.RateTable,
) *HistoryUseCase {
	return &HistoryUseCase{
		importRepo:    importRepo,
		workspaceRepo: workspaceRepo,
		settingsRepo:  settingsRepo,
		defaultRates:  defaultRates,
	}
}

// Grouped agrupa todas las importaciones según mode (week, month o year; vacío = month).
// Los grupos y sus importaciones quedan de la más reciente a la más antigua.
func (uc *HistoryUseCase) Grouped(ctx context.Context, workspaceID, mode string) (*dto.HistoryResponse, error) {
	if mode == "" {
		mode = dto.HistoryByMonth
	}
	keyFn, ok := periodKeys[mode]
	if !ok {
		return nil, fmt.Errorf("%w: agrupación %q", domain.ErrInvalidInput, mode)
	}

	ws, err := uc.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	cfg, err := settings.Load(ctx, uc.settingsRepo, workspaceID, uc.defaultRates)
	if err != nil {
		return nil, err
	}
	list, err := uc.importRepo.List(ctx, workspaceID, 0)
	if err != nil {
		return nil, err
	}

	// list ya viene del más reciente al más antiguo: el primer elemento de cada grupo
	// es su importación más reciente y los grupos conservan ese orden.
	groups := make([]dto.HistoryGroupDTO, 0)
	index := make(map[string]int)
	for _, b := range list {
		item := dto.HistoryItemDTO{Import: *imports.ToImportResponse(b, ws.ActiveImportID)}
		cur := item.Import.Currency
		if report := computeReport(b, cfg); report != nil {
			item.FinalProfit = report.FinalProfit
		}

		key, label := keyFn(b.CreatedAt)
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, dto.HistoryGroupDTO{
				Key:          key,
				Label:        label,
				TotalProfits: make(map[string]decimal.Decimal),
			})
		}
		g := &groups[i]
		g.Items = append(g.Items, item)
		if cur != "" {
			g.TotalProfits[cur] = g.TotalProfits[cur].Add(item.FinalProfit)
		}
	}
	return &dto.HistoryResponse{Mode: mode, Groups: groups}, nil
}

var periodKeys = map[string]func(time.Time) (key, label string){
	dto.HistoryByWeek:  weekPeriod,
	dto.HistoryByMonth: monthPeriod,
	dto.HistoryByYear:  yearPeriod,
}

// weekPeriod semana ISO: clave "2025-W2", etiqueta "Semana del 6 ene al 12 ene".
func weekPeriod(t time.Time) (string, string) {
	year, week := t.ISOWeek()
	offset := (int(t.Weekday()) + 6) % 7 // lunes = 0
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%d-W%d", year, week),
		fmt.Sprintf("Semana del %s al %s", numfmt.ShortDate(monday), numfmt.ShortDate(sunday))
}

// monthPeriod clave "2025-01", etiqueta "enero de 2025".
func monthPeriod(t time.Time) (string, string) {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month())), numfmt.MonthYear(t)
}

func yearPeriod(t time.Time) (string, string) {
	y := strconv.Itoa(t.Year())
	return y, y
}
