package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Sus variantes concretas (SKU) se generan
// a partir de las dimensiones y opciones declaradas.
// TotalStock es un contador cacheado; la fuente de verdad es el libro de movimientos.
type Product struct {
	ID         string
	SeqID      int64  // identificador secuencial asignado por el almacenamiento
	Code       string // código único global, prefijo de los códigos SKU
	Name       string
	Active     bool
	Favourite  bool
	TaxCode    string // código arancelario (HSN), opcional
	TotalStock decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
