package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantRequest declara una dimensión de variante con sus valores.
type VariantRequest struct {
	Name    string   `json:"name" validate:"required,max=255"`
	Options []string `json:"options" validate:"dive,required,max=255"`
}

// CreateProductRequest entrada para crear un producto con sus variantes.
type CreateProductRequest struct {
	Code      string           `json:"code" validate:"required,max=255"`
	Name      string           `json:"name" validate:"required,max=255"`
	TaxCode   string           `json:"tax_code" validate:"max=255"`
	Active    *bool            `json:"active"`
	Favourite bool             `json:"favourite"`
	Variants  []VariantRequest `json:"variants" validate:"dive"`
}

// UpdateProductRequest entrada para actualizar un producto (sin código ni stock).
type UpdateProductRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	TaxCode   *string `json:"tax_code" validate:"omitempty,max=255"`
	Active    *bool   `json:"active"`
	Favourite *bool   `json:"favourite"`
}

// OptionResponse valor de una dimensión.
type OptionResponse struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// VariantResponse dimensión con sus opciones en orden de declaración.
type VariantResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Position int64            `json:"position"`
	Options  []OptionResponse `json:"options"`
}

// ProductResponse salida de un producto. Variants y SKUs sólo se incluyen en el detalle.
type ProductResponse struct {
	ID         string            `json:"id"`
	ProductID  int64             `json:"product_id"`
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	TaxCode    string            `json:"tax_code"`
	Active     bool              `json:"active"`
	Favourite  bool              `json:"favourite"`
	TotalStock decimal.Decimal   `json:"total_stock"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Variants   []VariantResponse `json:"variants,omitempty"`
	SKUs       []SKUResponse     `json:"skus,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CodeCheckResponse respuesta de GET /api/products/check-code.
type CodeCheckResponse struct {
	Code   string `json:"code"`
	Exists bool   `json:"exists"`
}
