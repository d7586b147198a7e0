package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	appinventory "github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// StockHandler maneja movimientos, reportes y reconciliación del libro de stock.
type StockHandler struct {
	movements *appinventory.RegisterMovementUseCase
	report    *appanalytics.StockReportUseCase
	reconcile *appinventory.ReconcileUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movements *appinventory.RegisterMovementUseCase,
	report *appanalytics.StockReportUseCase,
	reconcile *appinventory.ReconcileUseCase,
) *StockHandler {
	return &StockHandler{movements: movements, report: report, reconcile: reconcile}
}

// Add godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_variant, quantity (> 0), notes"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeIN)
}

// Remove godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_variant, quantity (> 0), notes"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/stock/remove [post]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeOUT)
}

func (h *StockHandler) register(c *fiber.Ctx, movementType string) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.Context(), movementType, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Report godoc
// @Summary      Reporte de movimientos por rango de fechas
// @Description  start_date y end_date (YYYY-MM-DD) son inclusivos; ambos opcionales.
// @Tags         stock
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	req := dto.StockReportRequest{StartDate: c.Query("start_date"), EndDate: c.Query("end_date")}
	out, err := h.report.Report(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar reporte de movimientos
// @Tags         stock
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format      query  string  true   "xlsx | pdf"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	req := dto.StockReportRequest{StartDate: c.Query("start_date"), EndDate: c.Query("end_date")}
	file, err := h.report.Export(c.Context(), req, c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}

// Reconcile godoc
// @Summary      Reconciliar totales de producto con el libro
// @Description  Informa los productos cuyo total cacheado difiere de la suma del libro; con fix=true los corrige.
// @Tags         stock
// @Produce      json
// @Param        fix  query  bool  false  "Corregir diferencias"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      409  {object}  dto.ErrorResponse  "reconciliación en curso"
// @Router       /api/stock/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Reconcile(c.Context(), c.QueryBool("fix", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
