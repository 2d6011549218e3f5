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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, workspace_id, name, country, sale_price, cost, shipping, target_cpa, include_iva, metrics, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// La foto de métricas se guarda como JSONB y no se recalcula al leer.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.SavedProduct) error {
	metrics, err := json.Marshal(p.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.WorkspaceID, p.Name, p.Country, p.SalePrice, p.Cost, p.Shipping, p.TargetCPA, p.IncludeIVA,
		metrics, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del espacio; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.SavedProduct, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE workspace_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, workspaceID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reemplaza borrador y métricas.
func (r *ProductRepo) Update(ctx context.Context, p *entity.SavedProduct) error {
	metrics, err := json.Marshal(p.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	query := `
		UPDATE products SET name = $3, country = $4, sale_price = $5, cost = $6, shipping = $7,
		       target_cpa = $8, include_iva = $9, metrics = $10, updated_at = $11
		WHERE workspace_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.WorkspaceID, p.ID, p.Name, p.Country, p.SalePrice, p.Cost, p.Shipping, p.TargetCPA, p.IncludeIVA,
		metrics, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWorkspace lista productos, más recientes primero; country vacío = todos.
func (r *ProductRepo) ListByWorkspace(ctx context.Context, workspaceID, country string) ([]*entity.SavedProduct, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE workspace_id = $1 AND ($2 = '' OR country = $2)
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, workspaceID, country)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.SavedProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto del espacio.
func (r *ProductRepo) Delete(ctx context.Context, workspaceID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.SavedProduct, error) {
	var (
		p       entity.SavedProduct
		metrics []byte
	)
	err := row.Scan(
		&p.ID, &p.WorkspaceID, &p.Name, &p.Country, &p.SalePrice, &p.Cost, &p.Shipping, &p.TargetCPA,
		&p.IncludeIVA, &metrics, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metrics, &p.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return &p, nil
}
