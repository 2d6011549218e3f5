package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Coinnecta-api/internal/application/analytics"
	"github.com/jhoicas/Coinnecta-api/internal/application/auth"
	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/application/pricing"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Coinnecta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Coinnecta-api/internal/interfaces/http"
	"github.com/jhoicas/Coinnecta-api/pkg/config"
	"github.com/jhoicas/Coinnecta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	defaultRates := currency.RateTable{
		"COP": cfg.Rates.COP,
		"MXN": cfg.Rates.MXN,
		"EUR": cfg.Rates.EUR,
	}

	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	importRepo := postgres.NewImportBatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, defaultRates)
	settingsUC := settings.NewSettingsUseCase(settingsRepo, workspaceRepo, defaultRates)
	productUC := pricing.NewProductUseCase(productRepo, settingsRepo, defaultRates)
	importUC := imports.NewImportUseCase(importRepo, workspaceRepo, txRunner, excel.NewOrderReportParser())

	// PDF: estado de resultados de una importación
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := appanalytics.NewReportUseCase(importRepo, workspaceRepo, settingsRepo, defaultRates, pdfGenerator)
	historyUC := appanalytics.NewHistoryUseCase(importRepo, workspaceRepo, settingsRepo, defaultRates)
	dashboardUC := appanalytics.NewDashboardUseCase(reportUC, importRepo, productRepo, settingsRepo, defaultRates)

	maxUpload := cfg.Import.MaxUploadBytes()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// margen para las cabeceras multipart
		BodyLimit: maxUpload + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Coinnecta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := postgres.Ping(pingCtx, pool); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "up"})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		ImportUC:       importUC,
		ReportUC:       reportUC,
		HistoryUC:      historyUC,
		DashboardUC:    dashboardUC,
		SettingsUC:     settingsUC,
		UploadLimiter:  httpRouter.NewUploadLimiter(cfg.Import.UploadRPS, cfg.Import.UploadBurst),
		MaxUploadBytes: int64(maxUpload),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
