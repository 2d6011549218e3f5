package repository

import (
	"context"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para SavedProduct (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.SavedProduct) error
	GetByID(ctx context.Context, workspaceID, id string) (*entity.SavedProduct, error)
	// Update reemplaza el producto completo (borrador y métricas).
	Update(ctx context.Context, product *entity.SavedProduct) error
	// ListByWorkspace lista productos; country vacío = todos los países.
	ListByWorkspace(ctx context.Context, workspaceID, country string) ([]*entity.SavedProduct, error)
	// Delete devuelve domain.ErrNotFound si el producto no existe.
	Delete(ctx context.Context, workspaceID, id string) error
}
