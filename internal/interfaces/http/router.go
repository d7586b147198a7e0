package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	appinventory "github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	ProductUC        *usecase.ProductUseCase
	ExpandVariants   *appinventory.ExpandVariantsUseCase
	SKUUC            *appinventory.SKUUseCase
	RegisterMovement *appinventory.RegisterMovementUseCase
	StockReport      *appanalytics.StockReportUseCase
	Reconcile        *appinventory.ReconcileUseCase
	DashboardUC      *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Products. check-code va antes de /:id para que no lo capture el parámetro.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ExpandVariants)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/check-code", productHandler.CheckCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/generate-variants", productHandler.GenerateVariants)

	// SKUs
	variants := api.Group("/product-variants")
	skuHandler := NewSKUHandler(deps.SKUUC)
	variants.Get("/", skuHandler.List)
	variants.Post("/", skuHandler.Create)
	variants.Get("/:id", skuHandler.GetByID)

	// Stock ledger
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.StockReport, deps.Reconcile)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	stock.Post("/add", stockHandler.Add)
	stock.Post("/remove", stockHandler.Remove)
	stock.Get("/report", stockHandler.Report)
	stock.Get("/report/export", stockHandler.Export)
	stock.Get("/dashboard-stats", dashboardHandler.GetStats)
	stock.Post("/reconcile", stockHandler.Reconcile)
}
