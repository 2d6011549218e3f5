package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

var _ repository.ImportBatchRepository = (*ImportBatchRepo)(nil)

const importColumns = `workspace_id, id, country, file_name, display_name, notes, stats, created_at`

// ImportBatchRepo historial de importaciones sobre PostgreSQL. Las estadísticas se
// guardan como JSONB y solo se escriben al crear.
type ImportBatchRepo struct {
	q Querier
}

// NewImportBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImportBatchRepository(q Querier) *ImportBatchRepo {
	return &ImportBatchRepo{q: q}
}

// Create persiste una importación. ErrDuplicate si el ID ya existe en el espacio.
func (r *ImportBatchRepo) Create(ctx context.Context, b *entity.ImportBatch) error {
	stats, err := json.Marshal(b.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	query := `INSERT INTO import_batches (` + importColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		b.WorkspaceID, b.ID, b.Country, b.FileName, b.DisplayName, b.Notes, stats, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert import: %w", err)
	}
	return nil
}

// GetByID obtiene una importación; (nil, nil) si no existe.
func (r *ImportBatchRepo) GetByID(ctx context.Context, workspaceID string, id int64) (*entity.ImportBatch, error) {
	query := `SELECT ` + importColumns + ` FROM import_batches WHERE workspace_id = $1 AND id = $2`
	b, err := scanImport(r.q.QueryRow(ctx, query, workspaceID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import: %w", err)
	}
	return b, nil
}

// List importaciones más recientes primero; limit <= 0 = todas.
func (r *ImportBatchRepo) List(ctx context.Context, workspaceID string, limit int) ([]*entity.ImportBatch, error) {
	query := `SELECT ` + importColumns + ` FROM import_batches WHERE workspace_id = $1 ORDER BY id DESC`
	args := []any{workspaceID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ImportBatch, 0)
	for rows.Next() {
		b, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// LatestID ID más reciente o 0.
func (r *ImportBatchRepo) LatestID(ctx context.Context, workspaceID string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM import_batches WHERE workspace_id = $1`, workspaceID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("latest import: %w", err)
	}
	return id, nil
}

// UpdateMetadata renombra o anota. Las estadísticas no se tocan.
func (r *ImportBatchRepo) UpdateMetadata(ctx context.Context, workspaceID string, id int64, displayName, notes string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE import_batches SET display_name = $3, notes = $4 WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id, displayName, notes,
	)
	if err != nil {
		return fmt.Errorf("update import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una importación.
func (r *ImportBatchRepo) Delete(ctx context.Context, workspaceID string, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM import_batches WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanImport(row pgx.Row) (*entity.ImportBatch, error) {
	var (
		b     entity.ImportBatch
		stats []byte
	)
	if err := row.Scan(&b.WorkspaceID, &b.ID, &b.Country, &b.FileName, &b.DisplayName, &b.Notes, &stats, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stats, &b.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &b, nil
}
