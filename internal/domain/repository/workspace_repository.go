package repository

import (
	"context"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// WorkspaceRepository define el puerto de persistencia para Workspace.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *entity.Workspace) error
	GetByID(ctx context.Context, id string) (*entity.Workspace, error)
	// UpdateProfile actualiza nombre del propietario y empresa.
	UpdateProfile(ctx context.Context, ws *entity.Workspace) error
	// SetActiveImport selecciona la importación activa (0 = ninguna).
	SetActiveImport(ctx context.Context, workspaceID string, importID int64) error
}
