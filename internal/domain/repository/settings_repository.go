package repository

import (
	"context"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// SettingsRepository persiste la configuración de cada espacio de trabajo.
type SettingsRepository interface {
	// Get devuelve (nil, nil) si el espacio aún no tiene configuración guardada.
	Get(ctx context.Context, workspaceID string) (*entity.Settings, error)
	// Save inserta o reemplaza la configuración completa.
	Save(ctx context.Context, settings *entity.Settings) error
}
