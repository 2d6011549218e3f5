// Package analytics contiene los casos de uso de lectura: estado de resultados de una
// importación, dashboard y historial agrupado.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/profit"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

// ReportPDFGenerator puerto para exportar un estado de resultados a PDF.
type ReportPDFGenerator interface {
	GenerateReport(report *dto.ProfitReportResponse, businessName string) ([]byte, error)
}

// ReportUseCase calcula el P&L de una importación con la configuración vigente.
type ReportUseCase struct {
	importRepo    repository.ImportBatchRepository
	workspaceRepo repository.WorkspaceRepository
	settingsRepo  repository.SettingsRepository
	defaultRates  currency.RateTable
	pdf           ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewReportUseCase(
	importRepo repository.ImportBatchRepository,
	workspaceRepo repository.WorkspaceRepository,
	settingsRepo repository.SettingsRepository,
	defaultRates currency.RateTable,
	pdf ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		importRepo:    importRepo,
		workspaceRepo: workspaceRepo,
		settingsRepo:  settingsRepo,
		defaultRates:  defaultRates,
		pdf:           pdf,
	}
}

// GetReport devuelve el P&L de la importación importID; 0 = la importación activa.
// Devuelve ErrNoActiveImport si se pide la activa y no hay ninguna.
func (uc *ReportUseCase) GetReport(ctx context.Context, workspaceID string, importID int64) (*dto.ProfitReportResponse, error) {
	res, _, err := uc.load(ctx, workspaceID, importID)
	return res, err
}

// DownloadPDF genera el PDF del P&L. Devuelve también un nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, workspaceID string, importID int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reporte pdf: generador no configurado")
	}
	res, ws, err := uc.load(ctx, workspaceID, importID)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.pdf.GenerateReport(res, ws.BusinessName)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	return content, fmt.Sprintf("reporte-%d.pdf", res.Import.ID), nil
}

func (uc *ReportUseCase) load(ctx context.Context, workspaceID string, importID int64) (*dto.ProfitReportResponse, *entity.Workspace, error) {
	var (
		ws  *entity.Workspace
		cfg *entity.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ws, err = uc.workspaceRepo.GetByID(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = settings.Load(gctx, uc.settingsRepo, workspaceID, uc.defaultRates)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ws == nil {
		return nil, nil, domain.ErrNotFound
	}

	if importID == 0 {
		if !ws.HasActiveImport() {
			return nil, nil, domain.ErrNoActiveImport
		}
		importID = ws.ActiveImportID
	}
	batch, err := uc.importRepo.GetByID(ctx, workspaceID, importID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, domain.ErrNotFound
	}

	report := computeReport(batch, cfg)
	if report == nil {
		return nil, nil, fmt.Errorf("%w: país %q no soportado", domain.ErrInvalidInput, batch.Country)
	}
	return &dto.ProfitReportResponse{
		Import: *imports.ToImportResponse(batch, ws.ActiveImportID),
		Report: report,
	}, ws, nil
}

// computeReport aplica la configuración del espacio y registra las monedas sin tasa.
func computeReport(batch *entity.ImportBatch, cfg *entity.Settings) *profit.Report {
	report := profit.ComputeReport(batch, cfg.AdSpend, cfg.Expenses, cfg.ExchangeRates)
	if report != nil && len(report.Warnings) > 0 {
		log.Warn().
			Str("workspace_id", batch.WorkspaceID).
			Int64("import_id", batch.ID).
			Strs("currencies", report.Warnings).
			Msg("tasa de cambio ausente, se usó 1:1")
	}
	return report
}
