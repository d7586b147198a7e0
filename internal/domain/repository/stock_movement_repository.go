package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// MovementRow es un movimiento con los datos de SKU y producto para reportes.
type MovementRow struct {
	entity.StockMovement
	SKUCode     string
	ProductID   string
	ProductName string
}

// SKUBalance totales del libro por SKU. Los SKUs sin movimientos aparecen con ceros.
type SKUBalance struct {
	SKUID     string
	SKUCode   string
	ProductID string
	TotalIn   decimal.Decimal
	TotalOut  decimal.Decimal
}

// Quantity existencia derivada del libro.
func (b SKUBalance) Quantity() decimal.Decimal {
	return b.TotalIn.Sub(b.TotalOut)
}

// ProductBalance compara el contador cacheado de un producto con el total del libro.
type ProductBalance struct {
	ProductID   string
	ProductCode string
	Cached      decimal.Decimal
	Ledger      decimal.Decimal
}

// Drift indica si el contador cacheado difiere del libro.
func (b ProductBalance) Drift() bool {
	return !b.Cached.Equal(b.Ledger)
}

// StockMovementRepository define el puerto del libro de movimientos (sólo inserción).
type StockMovementRepository interface {
	// Create agrega una entrada; asigna ID y Seq si faltan.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// SumBySKU devuelve Σ IN y Σ OUT del SKU.
	SumBySKU(ctx context.Context, skuID string) (in, out decimal.Decimal, err error)
	// SumByProduct suma Σ IN − Σ OUT sobre todos los SKUs del producto.
	SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
	// ListByDateRange movimientos con from <= CreatedAt < to, más recientes primero. Límites nil = abiertos.
	ListByDateRange(ctx context.Context, from, to *time.Time) ([]*MovementRow, error)
	// ListRecent los limit movimientos más recientes.
	ListRecent(ctx context.Context, limit int) ([]*MovementRow, error)
	// Balances totales por SKU; productID vacío = todos los SKUs.
	Balances(ctx context.Context, productID string) ([]SKUBalance, error)
	// ProductBalances contador cacheado frente a libro para todos los productos.
	ProductBalances(ctx context.Context) ([]ProductBalance, error)
}
