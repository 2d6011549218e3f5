// Package imports gestiona el historial de importaciones de reportes de pedidos.
package imports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/internal/domain/orders"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

const maxCreateAttempts = 3

// ImportUseCase carga reportes y administra el historial (más reciente primero).
type ImportUseCase struct {
	repo          repository.ImportBatchRepository
	workspaceRepo repository.WorkspaceRepository
	tx            TxRunner
	parser        OrderReportParser
	now           func() time.Time
}

// NewImportUseCase construye el caso de uso. tx agrupa las escrituras de Upload.
func NewImportUseCase(repo repository.ImportBatchRepository, workspaceRepo repository.WorkspaceRepository, tx TxRunner, parser OrderReportParser) *ImportUseCase {
	return &ImportUseCase{repo: repo, workspaceRepo: workspaceRepo, tx: tx, parser: parser, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ImportUseCase) WithClock(now func() time.Time) *ImportUseCase {
	uc.now = now
	return uc
}

// Upload lee el archivo, acumula sus estadísticas y crea una importación nueva que
// queda como activa. El ID es el instante de creación en milisegundos y siempre es
// mayor que el de la importación más reciente. El alta y la activación se confirman
// juntas: si una falla no queda nada escrito.
func (uc *ImportUseCase) Upload(ctx context.Context, workspaceID string, in dto.UploadImportInput) (*dto.ImportResponse, error) {
	profile, ok := market.Profile(in.Country)
	if !ok {
		return nil, fmt.Errorf("%w: país %q", domain.ErrInvalidInput, in.Country)
	}
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" || len(in.Content) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	rows, err := uc.parser.Parse(bytes.NewReader(in.Content), fileName)
	if err != nil {
		return nil, err
	}
	stats := orders.Tally(rows)

	latest, err := uc.repo.LatestID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	batch := &entity.ImportBatch{
		ID:          nextID(now, latest),
		WorkspaceID: workspaceID,
		Country:     profile.Code,
		FileName:    fileName,
		Stats:       stats,
		CreatedAt:   now,
	}

	// Un ID repetido aborta la transacción; se reintenta con una nueva.
	for attempt := 1; ; attempt++ {
		err = uc.tx.RunImport(ctx, func(batches repository.ImportBatchRepository, workspaces repository.WorkspaceRepository) error {
			if err := batches.Create(ctx, batch); err != nil {
				return err
			}
			return workspaces.SetActiveImport(ctx, workspaceID, batch.ID)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxCreateAttempts {
			return nil, err
		}
		batch.ID++
	}

	log.Info().
		Str("workspace_id", workspaceID).
		Int64("import_id", batch.ID).
		Str("country", batch.Country).
		Int("orders", stats.TotalOrders).
		Msg("importación creada")

	return ToImportResponse(batch, batch.ID), nil
}

// List devuelve el historial completo, más reciente primero.
func (uc *ImportUseCase) List(ctx context.Context, workspaceID string) (*dto.ImportListResponse, error) {
	ws, err := uc.workspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, workspaceID, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ImportResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *ToImportResponse(b, ws.ActiveImportID))
	}
	return &dto.ImportListResponse{Items: items, ActiveID: ws.ActiveImportID}, nil
}

// Get obtiene una importación.
func (uc *ImportUseCase) Get(ctx context.Context, workspaceID string, id int64) (*dto.ImportResponse, error) {
	ws, err := uc.workspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	b, err := uc.batch(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	return ToImportResponse(b, ws.ActiveImportID), nil
}

// SetActive selecciona la importación que alimenta reportes y dashboard.
func (uc *ImportUseCase) SetActive(ctx context.Context, workspaceID string, id int64) (*dto.ImportResponse, error) {
	b, err := uc.batch(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.workspaceRepo.SetActiveImport(ctx, workspaceID, id); err != nil {
		return nil, err
	}
	return ToImportResponse(b, id), nil
}

// UpdateMetadata renombra o anota una importación. Las estadísticas no cambian.
func (uc *ImportUseCase) UpdateMetadata(ctx context.Context, workspaceID string, id int64, in dto.UpdateImportRequest) (*dto.ImportResponse, error) {
	b, err := uc.batch(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		b.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	if err := uc.repo.UpdateMetadata(ctx, workspaceID, id, b.DisplayName, b.Notes); err != nil {
		return nil, err
	}
	return uc.Get(ctx, workspaceID, id)
}

// Delete elimina una importación. Si era la activa, la más reciente restante pasa a serlo.
func (uc *ImportUseCase) Delete(ctx context.Context, workspaceID string, id int64) error {
	ws, err := uc.workspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	if ws.ActiveImportID != id {
		return nil
	}
	latest, err := uc.repo.LatestID(ctx, workspaceID)
	if err != nil {
		return err
	}
	return uc.workspaceRepo.SetActiveImport(ctx, workspaceID, latest)
}

func (uc *ImportUseCase) workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error) {
	ws, err := uc.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	return ws, nil
}

func (uc *ImportUseCase) batch(ctx context.Context, workspaceID string, id int64) (*entity.ImportBatch, error) {
	b, err := uc.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func nextID(now time.Time, latest int64) int64 {
	id := now.UnixMilli()
	if id <= latest {
		id = latest + 1
	}
	return id
}

// ToImportResponse convierte una importación a DTO marcando si es la activa.
func ToImportResponse(b *entity.ImportBatch, activeID int64) *dto.ImportResponse {
	cur := ""
	if profile, ok := market.Profile(b.Country); ok {
		cur = profile.CurrencyCode
	}
	return &dto.ImportResponse{
		ID:          b.ID,
		Country:     b.Country,
		Currency:    cur,
		FileName:    b.FileName,
		DisplayName: b.DisplayName,
		Label:       b.Label(),
		Notes:       b.Notes,
		Active:      b.ID == activeID,
		Stats:       b.Stats,
		CreatedAt:   b.CreatedAt,
	}
}
