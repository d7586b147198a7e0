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

	appanalytics "github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
	domaininv "github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/backend"
	infrapdf "github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/pdf"
	infraxlsx "github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/xlsx"
	httpRouter "github.com/ashiqmuneeb/Inventory-Pro/internal/interfaces/http"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/config"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := backend.Open(ctx, cfg, log.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer be.Close()

	zl := log.Zerolog()
	repos := be.Repos
	policy := domaininv.StockPolicy{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		UnitValue:         cfg.Inventory.UnitValue,
		RecentLimit:       cfg.Inventory.RecentLimit,
	}

	expandUC := inventory.NewExpandVariantsUseCase(be.TxRunner, be.Stats, zl)
	registerMovementUC := inventory.NewRegisterMovementUseCase(be.TxRunner, repos.SKUs, repos.Movements, be.Stats, zl)
	skuUC := inventory.NewSKUUseCase(be.TxRunner, repos.SKUs, repos.Movements, be.Stats, zl)
	reconcileUC := inventory.NewReconcileUseCase(be.TxRunner, repos.Movements, be.Locker, be.Stats, zl)
	productUC := usecase.NewProductUseCase(be.TxRunner, repos.Products, repos.Variants, repos.SKUs, repos.Movements, expandUC, be.Stats, zl)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Products, repos.Movements, be.Stats, policy, zl)
	reportUC := appanalytics.NewStockReportUseCase(repos.Movements, zl,
		infraxlsx.NewExcelReportGenerator(),
		infrapdf.NewMarotoReportGenerator(""),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Inventory Pro API",
		}))
	} else if cfg.App.SwaggerFile != "" {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		ProductUC:        productUC,
		ExpandVariants:   expandUC,
		SKUUC:            skuUC,
		RegisterMovement: registerMovementUC,
		StockReport:      reportUC,
		Reconcile:        reconcileUC,
		DashboardUC:      dashboardUC,
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
