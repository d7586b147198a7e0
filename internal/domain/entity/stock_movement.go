package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement es una entrada inmutable del libro de movimientos de un SKU.
// Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID        string
	Seq       int64 // desempate de orden para movimientos con el mismo CreatedAt
	SKUID     string
	Type      string
	Quantity  decimal.Decimal
	Notes     string
	CreatedAt time.Time
}

// Signed devuelve la cantidad con signo (+IN, -OUT).
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// IsValidMovementType indica si t es IN u OUT.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}
