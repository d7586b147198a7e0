package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKUOptionRequest asignación dimensión=valor para crear un SKU manualmente.
type SKUOptionRequest struct {
	Dimension string `json:"dimension" validate:"required,max=255"`
	Value     string `json:"value" validate:"required,max=255"`
}

// CreateSKURequest entrada de POST /api/product-variants. Code vacío = código compuesto.
type CreateSKURequest struct {
	ProductID string             `json:"product_id" validate:"required"`
	Code      string             `json:"code" validate:"max=255"`
	Options   []SKUOptionRequest `json:"options" validate:"required,min=1,dive"`
}

// SKUOptionResponse opción asignada a un SKU.
type SKUOptionResponse struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

// SKUResponse variante concreta con su existencia derivada del libro.
type SKUResponse struct {
	ID           string              `json:"id"`
	ProductID    string              `json:"product_id"`
	Code         string              `json:"sku"`
	Options      []SKUOptionResponse `json:"options"`
	CurrentStock decimal.Decimal     `json:"current_stock"`
	CreatedAt    time.Time           `json:"created_at"`
}

// SKUListResponse lista de SKUs.
type SKUListResponse struct {
	Items []SKUResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// GenerateVariantsResponse resultado de una expansión idempotente.
type GenerateVariantsResponse struct {
	ProductID    string        `json:"product_id"`
	CreatedCount int           `json:"created_count"`
	Created      []SKUResponse `json:"created"`
}
