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
	"github.com/tu-usuario/inventario-planta/internal/application/alerts"
	"github.com/tu-usuario/inventario-planta/internal/application/auth"
	"github.com/tu-usuario/inventario-planta/internal/application/inventory"
	"github.com/tu-usuario/inventario-planta/internal/application/reports"
	"github.com/tu-usuario/inventario-planta/internal/application/usecase"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/memory"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/inventario-planta/internal/interfaces/http"
	"github.com/tu-usuario/inventario-planta/pkg/config"
	"github.com/tu-usuario/inventario-planta/pkg/logger"
)

// repos agrupa los puertos de persistencia ya construidos para un backend.
type repos struct {
	product  repository.ProductRepository
	location repository.LocationRepository
	stock    repository.StockRepository
	movement repository.MovementLogRepository
	alert    repository.AlertRepository
	setting  repository.SettingRepository
	user     repository.UserRepository
	txRunner inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.App.Storage {
	case "memory":
		// Modo desarrollo: almacén en memoria, sin PostgreSQL.
		store := memory.NewStore(time.Duration(cfg.DB.LockTimeoutMS) * time.Millisecond)
		r = repos{
			product:  memory.NewProductRepository(store),
			location: memory.NewLocationRepository(store),
			stock:    memory.NewStockRepository(store),
			movement: memory.NewMovementLogRepository(store),
			alert:    memory.NewAlertRepository(store),
			setting:  memory.NewSettingRepository(store),
			user:     memory.NewUserRepository(store),
			txRunner: memory.NewTxRunner(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		r = repos{
			product:  postgres.NewProductRepository(pool),
			location: postgres.NewLocationRepository(pool),
			stock:    postgres.NewStockRepository(pool),
			movement: postgres.NewMovementLogRepository(pool),
			alert:    postgres.NewAlertRepository(pool),
			setting:  postgres.NewSettingRepository(pool),
			user:     postgres.NewUserRepository(pool),
			txRunner: postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS),
		}
	}

	if err := r.location.EnsureDefaults(); err != nil {
		log.Fatal().Err(err).Msg("sembrar ubicaciones por defecto")
	}

	authUC := auth.NewUseCase(r.user, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.SeedAdminIfMissing("admin", "admin123"); err != nil {
		log.Fatal().Err(err).Msg("sembrar usuario admin")
	}

	engine := inventory.NewEngine(r.txRunner, r.product, r.location)
	productUC := usecase.NewProductUseCase(r.product)
	locationUC := usecase.NewLocationUseCase(r.location)
	movementUC := usecase.NewMovementQueryUseCase(r.movement, r.stock)
	alertUC := alerts.NewUseCase(r.alert, r.movement, r.product)
	reportUC := reports.NewDailyUseCase(r.movement, r.alert, r.product)

	// Planificador de alertas en segundo plano.
	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	scheduler := alerts.NewScheduler(alertUC, r.setting, log, cfg.Alerts.ScanIntervalMinutes)
	go scheduler.Run(schedCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	mountSwagger(app, log, "./docs/swagger.json")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		LocationUC:  locationUC,
		MovementUC:  movementUC,
		Engine:      engine,
		AlertUC:     alertUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		SettingRepo: r.setting,
		JWTSecret:   cfg.JWT.Secret,
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
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// mountSwagger publica la UI de documentación solo si el archivo de
// especificación existe: el middleware de contrib entra en pánico al
// construirse con una ruta inexistente, y la API debe levantar igual sin él.
func mountSwagger(app *fiber.App, log *logger.Logger, filePath string) {
	if _, err := os.Stat(filePath); err != nil {
		log.Warn().Str("file", filePath).Msg("swagger.json no encontrado, UI de documentación deshabilitada")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Inventario Planta API",
	}))
}
