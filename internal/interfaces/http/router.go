package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/SmartTrack-api/internal/application/analytics"
	"github.com/jhoicas/SmartTrack-api/internal/application/auth"
	"github.com/jhoicas/SmartTrack-api/internal/application/inventory"
	"github.com/jhoicas/SmartTrack-api/internal/application/reports"
	"github.com/jhoicas/SmartTrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC     *inventory.BatchUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *reports.ReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
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

	// Inventario de lotes (protegido)
	batches := protected.Group("/inventory/batches")
	inventoryHandler := NewInventoryHandler(deps.BatchUC)
	batches.Get("/", inventoryHandler.List)
	batches.Get("/near-expiry", inventoryHandler.NearExpiry)
	batches.Get("/expired", inventoryHandler.Expired)
	batches.Get("/fefo", inventoryHandler.FEFO)
	batches.Get("/search", inventoryHandler.Search)
	batches.Get("/:id", inventoryHandler.GetByID)
	batches.Post("/", inventoryHandler.Create)
	batches.Put("/:id", inventoryHandler.Update)
	// Solo admin puede eliminar lotes
	batches.Delete("/:id", RequireRole(entity.RoleAdmin), inventoryHandler.Delete)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/overview", dashboardHandler.GetOverview)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/", reportHandler.GetReport)
	reportsGroup.Get("/pdf", reportHandler.ExportPDF)
}
