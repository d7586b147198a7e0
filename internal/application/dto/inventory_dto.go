package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST /api/stock/add y /api/stock/remove.
type StockMovementRequest struct {
	SKUID    string          `json:"product_variant" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes" validate:"max=2000"`
}

// StockMovementResponse entrada registrada y existencia resultante del SKU.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	SKUID        string          `json:"product_variant"`
	Type         string          `json:"transaction_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// StockReportRequest filtros de GET /api/stock/report (fechas YYYY-MM-DD, ambas opcionales).
type StockReportRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// StockReportItem fila del reporte de movimientos.
type StockReportItem struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
	Type        string          `json:"transaction_type"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockReportDTO reporte completo, usado también por los exportadores.
type StockReportDTO struct {
	StartDate   string            `json:"start_date,omitempty"`
	EndDate     string            `json:"end_date,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	TotalIn     decimal.Decimal   `json:"total_in"`
	TotalOut    decimal.Decimal   `json:"total_out"`
	Items       []StockReportItem `json:"items"`
}

// DriftItem producto cuyo contador cacheado difiere del libro.
type DriftItem struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	Cached      decimal.Decimal `json:"cached_total"`
	Ledger      decimal.Decimal `json:"ledger_total"`
}

// ReconcileResponse resultado de la reconciliación.
type ReconcileResponse struct {
	Checked int         `json:"checked"`
	Drifted []DriftItem `json:"drifted"`
	Fixed   bool        `json:"fixed"`
}
