package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	appinventory "github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
)

// SKUHandler expone los SKUs (variantes concretas) de los productos.
type SKUHandler struct {
	uc *appinventory.SKUUseCase
}

func NewSKUHandler(uc *appinventory.SKUUseCase) *SKUHandler {
	return &SKUHandler{uc: uc}
}

// List godoc
// @Summary      Listar SKUs con su existencia
// @Tags         product-variants
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SKUListResponse
// @Router       /api/product-variants [get]
func (h *SKUHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), c.Query("product_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener SKU
// @Tags         product-variants
// @Produce      json
// @Param        id   path  string  true  "ID del SKU"
// @Success      200  {object}  dto.SKUResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-variants/{id} [get]
func (h *SKUHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear SKU manual
// @Description  Asigna una opción por dimensión; las dimensiones y opciones nuevas se crean si no existen.
// @Tags         product-variants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSKURequest  true  "Producto y opciones"
// @Success      201   {object}  dto.SKUResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-variants [post]
func (h *SKUHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
