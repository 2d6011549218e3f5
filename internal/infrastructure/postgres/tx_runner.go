package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Coinnecta-api/internal/application/auth"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

var (
	_ auth.TxRunner    = (*TxRunner)(nil)
	_ imports.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción con los repos del alta de un espacio de
// trabajo y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	workspaces repository.WorkspaceRepository,
	users repository.UserRepository,
	settings repository.SettingsRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewWorkspaceRepository(tx), NewUserRepository(tx), NewSettingsRepository(tx))
	})
}

// RunImport igual que RunRegistration, con los repos del historial de importaciones.
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	batches repository.ImportBatchRepository,
	workspaces repository.WorkspaceRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewImportBatchRepository(tx), NewWorkspaceRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
