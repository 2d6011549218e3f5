package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Coinnecta-api/internal/application/analytics"
	"github.com/jhoicas/Coinnecta-api/internal/application/auth"
	"github.com/jhoicas/Coinnecta-api/internal/application/imports"
	"github.com/jhoicas/Coinnecta-api/internal/application/pricing"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *pricing.ProductUseCase
	ImportUC    *imports.ImportUseCase
	ReportUC    *appanalytics.ReportUseCase
	HistoryUC   *appanalytics.HistoryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	SettingsUC  *settings.SettingsUseCase

	UploadLimiter  *UploadLimiter
	MaxUploadBytes int64
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	ownerOnly := RequireRole(entity.RoleOwner)

	// Calculadora de márgenes y productos guardados
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/preview", productHandler.Preview)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", ownerOnly, productHandler.Delete)

	// Importaciones de pedidos
	importsGroup := protected.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC, deps.MaxUploadBytes)
	upload := []fiber.Handler{}
	if deps.UploadLimiter != nil {
		upload = append(upload, LimitUploads(deps.UploadLimiter))
	}
	importsGroup.Post("/", append(upload, importHandler.Upload)...)
	importsGroup.Get("/", importHandler.List)
	importsGroup.Get("/:id", importHandler.Get)
	importsGroup.Post("/:id/activate", importHandler.Activate)
	importsGroup.Patch("/:id", importHandler.Update)
	importsGroup.Delete("/:id", ownerOnly, importHandler.Delete)

	// Estado de resultados e historial
	reportHandler := NewReportHandler(deps.ReportUC, deps.HistoryUC)
	protected.Get("/reports/:id", reportHandler.Get)
	protected.Get("/reports/:id/pdf", reportHandler.PDF)
	protected.Get("/history", reportHandler.History)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Configuración: lectura para todos, cambios solo el propietario
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/rates", ownerOnly, settingsHandler.UpdateRates)
	settingsGroup.Put("/ad-spend", ownerOnly, settingsHandler.UpdateAdSpend)
	settingsGroup.Put("/expenses", ownerOnly, settingsHandler.UpdateExpenses)
	settingsGroup.Post("/card-expenses", ownerOnly, settingsHandler.AddCardExpense)
	settingsGroup.Delete("/card-expenses/:id", ownerOnly, settingsHandler.RemoveCardExpense)
	settingsGroup.Put("/cpa-reference", ownerOnly, settingsHandler.UpdateCPAReference)
	settingsGroup.Put("/rate-assumptions", ownerOnly, settingsHandler.UpdateRateAssumptions)
	settingsGroup.Put("/preferences", ownerOnly, settingsHandler.UpdatePreferences)
	settingsGroup.Put("/profile", ownerOnly, settingsHandler.UpdateProfile)
}
