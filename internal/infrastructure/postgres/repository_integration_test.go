package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/application/auth"
	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/postgres"
)

// openTestDB aplica las migraciones sobre TEST_DATABASE_URL. Sin base disponible el
// test se omite.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("test de integración")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dbURL)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	if err := postgres.Ping(ctx, pool); err != nil {
		pool.Close()
		t.Skip("base de datos no disponible")
	}

	_ = postgres.RollbackMigrations(dbURL)
	require.NoError(t, postgres.RunMigrations(dbURL))
	t.Cleanup(func() {
		pool.Close()
		_ = postgres.RollbackMigrations(dbURL)
	})
	return pool
}

func TestIntegracion_RegistroEnTransaccion(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewTxRunner(pool),
		auth.JWTConfig{Secret: "secreto", ExpMinutes: 60, Issuer: "coinnecta-test"}, currency.DefaultRates())

	user, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@tienda.com", Password: "clave-segura", BusinessName: "Tienda"})
	require.NoError(t, err)

	ws, err := postgres.NewWorkspaceRepository(pool).GetByID(ctx, user.WorkspaceID)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, "Tienda", ws.BusinessName)

	cfg, err := postgres.NewSettingsRepository(pool).Get(ctx, user.WorkspaceID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.ExchangeRates["COP"].Equal(decimal.NewFromInt(4000)))

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@tienda.com", Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestIntegracion_HistorialDeImportaciones(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	wsID := uuid.NewString()
	require.NoError(t, postgres.NewWorkspaceRepository(pool).Create(ctx, &entity.Workspace{
		ID: wsID, Status: "active", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	repo := postgres.NewImportBatchRepository(pool)
	latest, err := repo.LatestID(ctx, wsID)
	require.NoError(t, err)
	assert.Zero(t, latest)

	batch := &entity.ImportBatch{
		ID: 1736164800000, WorkspaceID: wsID, Country: "colombia", FileName: "enero.xlsx",
		Stats:     entity.AggregateStats{TotalOrders: 3, Delivered: 2, BilledRevenue: decimal.NewFromInt(200000)},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, batch))
	assert.ErrorIs(t, repo.Create(ctx, batch), domain.ErrDuplicate)

	require.NoError(t, repo.UpdateMetadata(ctx, wsID, batch.ID, "Enero", "campaña navidad"))
	got, err := repo.GetByID(ctx, wsID, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Enero", got.DisplayName)
	assert.Equal(t, 2, got.Stats.Delivered)
	assert.True(t, got.Stats.BilledRevenue.Equal(decimal.NewFromInt(200000)))

	latest, err = repo.LatestID(ctx, wsID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, latest)

	require.NoError(t, repo.Delete(ctx, wsID, batch.ID))
	assert.ErrorIs(t, repo.Delete(ctx, wsID, batch.ID), domain.ErrNotFound)
}

func TestIntegracion_ImportacionSeRevierteSinActivacion(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	wsID := uuid.NewString()
	require.NoError(t, postgres.NewWorkspaceRepository(pool).Create(ctx, &entity.Workspace{
		ID: wsID, Status: "active", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	errAbortar := errors.New("abortar")
	err := postgres.NewTxRunner(pool).RunImport(ctx, func(batches repository.ImportBatchRepository, workspaces repository.WorkspaceRepository) error {
		batch := &entity.ImportBatch{ID: 1736164800000, WorkspaceID: wsID, Country: "colombia", FileName: "enero.xlsx", CreatedAt: time.Now()}
		require.NoError(t, batches.Create(ctx, batch))
		require.NoError(t, workspaces.SetActiveImport(ctx, wsID, batch.ID))
		return errAbortar
	})
	assert.ErrorIs(t, err, errAbortar)

	latest, err := postgres.NewImportBatchRepository(pool).LatestID(ctx, wsID)
	require.NoError(t, err)
	assert.Zero(t, latest)
	ws, err := postgres.NewWorkspaceRepository(pool).GetByID(ctx, wsID)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Zero(t, ws.ActiveImportID)
}
