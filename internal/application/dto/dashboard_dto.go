package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/stock/dashboard-stats.
// Los conteos de estado son por SKU; TotalProducts cuenta productos.
type DashboardStatsDTO struct {
	TotalProducts      int               `json:"total_products"`
	InventoryValue     decimal.Decimal   `json:"inventory_value"`
	LowStockItems      int               `json:"low_stock_items"`
	StockStatus        StockStatusDTO    `json:"stock_status"`
	RecentTransactions []StockReportItem `json:"recent_transactions"`
}

// StockStatusDTO conteo de SKUs por estado.
type StockStatusDTO struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}
