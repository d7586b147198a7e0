package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// Estados de stock usados por el tablero.
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

// Límites de cantidad, iguales a las columnas NUMERIC(20,8) del libro.
const (
	QuantityScale     = 8
	QuantityIntDigits = 12
)

var maxQuantity = decimal.New(1, QuantityIntDigits)

// QuantityFitsScale indica si qty se representa sin redondeo con QuantityScale decimales.
func QuantityFitsScale(qty decimal.Decimal) bool {
	return qty.Equal(qty.Truncate(QuantityScale))
}

// QuantityFitsMagnitude indica si la parte entera de qty tiene como máximo QuantityIntDigits dígitos.
func QuantityFitsMagnitude(qty decimal.Decimal) bool {
	return qty.Abs().LessThan(maxQuantity)
}

// Balance suma el libro de movimientos: Σ IN − Σ OUT.
func Balance(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Signed())
	}
	return total
}

// CanWithdraw indica si una salida de qty es posible con la existencia current.
func CanWithdraw(current, qty decimal.Decimal) bool {
	return qty.LessThanOrEqual(current)
}

// StockPolicy agrupa los parámetros de clasificación y valoración del inventario.
type StockPolicy struct {
	LowStockThreshold decimal.Decimal // cantidades por debajo (y > 0) son "bajas"
	UnitValue         decimal.Decimal // valor fijo por unidad
	RecentLimit       int             // movimientos recientes en el tablero
}

// DefaultStockPolicy umbral 10, valor unitario 10 y 5 movimientos recientes.
func DefaultStockPolicy() StockPolicy {
	return StockPolicy{
		LowStockThreshold: decimal.NewFromInt(10),
		UnitValue:         decimal.NewFromInt(10),
		RecentLimit:       5,
	}
}

// Classify devuelve el estado de stock para una cantidad.
// Cantidades negativas (sólo posibles por datos inconsistentes) cuentan como agotadas.
func (p StockPolicy) Classify(qty decimal.Decimal) string {
	switch {
	case qty.GreaterThanOrEqual(p.LowStockThreshold):
		return StockStatusIn
	case qty.GreaterThan(decimal.Zero):
		return StockStatusLow
	default:
		return StockStatusOut
	}
}

// Valuation valor del inventario: cantidad total × valor unitario, redondeado a 2 decimales.
func (p StockPolicy) Valuation(totalQty decimal.Decimal) decimal.Decimal {
	return totalQty.Mul(p.UnitValue).Round(2)
}
