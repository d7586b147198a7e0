package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	// Create persiste el producto y asigna SeqID. ErrDuplicate si el código ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustTotalStock suma delta (con signo) al contador cacheado.
	AdjustTotalStock(ctx context.Context, productID string, delta decimal.Decimal) error
	SetTotalStock(ctx context.Context, productID string, total decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	// Delete elimina el producto con sus dimensiones, SKUs y movimientos. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
