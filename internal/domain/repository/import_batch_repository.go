package repository

import (
	"context"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// ImportBatchRepository define el puerto de persistencia del historial de importaciones.
// Las estadísticas de una importación nunca se modifican después de crearla.
type ImportBatchRepository interface {
	Create(ctx context.Context, batch *entity.ImportBatch) error
	GetByID(ctx context.Context, workspaceID string, id int64) (*entity.ImportBatch, error)
	// List devuelve las importaciones más recientes primero; limit <= 0 = todas.
	List(ctx context.Context, workspaceID string, limit int) ([]*entity.ImportBatch, error)
	// LatestID devuelve el ID más reciente o 0 si no hay importaciones.
	LatestID(ctx context.Context, workspaceID string) (int64, error)
	UpdateMetadata(ctx context.Context, workspaceID string, id int64, displayName, notes string) error
	// Delete devuelve domain.ErrNotFound si la importación no existe.
	Delete(ctx context.Context, workspaceID string, id int64) error
}
