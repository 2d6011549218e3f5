package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

var _ repository.WorkspaceRepository = (*WorkspaceRepo)(nil)

// WorkspaceRepo implementación del puerto WorkspaceRepository sobre PostgreSQL.
type WorkspaceRepo struct {
	q Querier
}

// NewWorkspaceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkspaceRepository(q Querier) *WorkspaceRepo {
	return &WorkspaceRepo{q: q}
}

// Create persiste un espacio de trabajo nuevo.
func (r *WorkspaceRepo) Create(ctx context.Context, ws *entity.Workspace) error {
	query := `
		INSERT INTO workspaces (id, owner_name, business_name, active_import_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		ws.ID, ws.OwnerName, ws.BusinessName, ws.ActiveImportID, ws.Status, ws.CreatedAt, ws.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// GetByID obtiene un espacio de trabajo; (nil, nil) si no existe.
func (r *WorkspaceRepo) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	query := `
		SELECT id, owner_name, business_name, active_import_id, status, created_at, updated_at
		FROM workspaces WHERE id = $1`
	var ws entity.Workspace
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.OwnerName, &ws.BusinessName, &ws.ActiveImportID, &ws.Status, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

// UpdateProfile actualiza nombre y empresa.
func (r *WorkspaceRepo) UpdateProfile(ctx context.Context, ws *entity.Workspace) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE workspaces SET owner_name = $2, business_name = $3, updated_at = $4 WHERE id = $1`,
		ws.ID, ws.OwnerName, ws.BusinessName, ws.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActiveImport selecciona la importación activa (0 = ninguna).
func (r *WorkspaceRepo) SetActiveImport(ctx context.Context, workspaceID string, importID int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE workspaces SET active_import_id = $2, updated_at = NOW() WHERE id = $1`,
		workspaceID, importID,
	)
	if err != nil {
		return fmt.Errorf("set active import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
