package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-planta/internal/application/alerts"
	"github.com/tu-usuario/inventario-planta/internal/application/auth"
	"github.com/tu-usuario/inventario-planta/internal/application/inventory"
	"github.com/tu-usuario/inventario-planta/internal/application/reports"
	"github.com/tu-usuario/inventario-planta/internal/application/usecase"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	MovementUC  *usecase.MovementQueryUseCase
	Engine      *inventory.Engine
	AlertUC     *alerts.UseCase
	ReportUC    *reports.DailyUseCase
	AuthUC      *auth.UseCase
	SettingRepo repository.SettingRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	movementHandler := NewMovementHandler(deps.MovementUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", movementHandler.StockByProduct)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/stock", movementHandler.StockByLocation)

	// Inventory: check-in, check-out, traslado (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine)
	invGroup.Post("/check-in", inventoryHandler.CheckIn)
	invGroup.Post("/check-out", inventoryHandler.CheckOut)
	invGroup.Post("/transfer", inventoryHandler.Transfer)

	// Bitácora de movimientos (protegido, solo lectura)
	movements := protected.Group("/movements")
	movements.Get("/", movementHandler.List)

	// Alertas (protegido)
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Get("/unresolved", alertHandler.ListUnresolved)
	alertGroup.Post("/scan", alertHandler.Scan)
	alertGroup.Post("/:id/resolve", alertHandler.Resolve)

	// Reportes (protegido, solo lectura)
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup.Get("/daily", reportHandler.Daily)

	// Configuración operativa (protegido)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingRepo)
	settings.Get("/:key", settingHandler.Get)
	settings.Put("/:key", settingHandler.Set)
}
