package repository

import (
	"context"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// SKURepository persiste las variantes concretas y sus asignaciones de opciones.
// Los Get* devuelven (nil, nil) cuando el SKU no existe.
type SKURepository interface {
	// Create inserta el SKU y sus opciones. ErrDuplicate si el código ya existe.
	Create(ctx context.Context, sku *entity.SKU) error
	GetByID(ctx context.Context, id string) (*entity.SKU, error)
	// GetByIDForUpdate bloquea la fila del SKU; serializa las salidas concurrentes del mismo SKU.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.SKU, error)
	GetByCode(ctx context.Context, code string) (*entity.SKU, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.SKU, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SKU, error)
}
