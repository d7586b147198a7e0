package repository

import (
	"context"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// VariantRepository persiste dimensiones y opciones de variante.
type VariantRepository interface {
	// CreateDimension asigna ID y Position. ErrDuplicate si el nombre ya existe en el producto.
	CreateDimension(ctx context.Context, dim *entity.VariantDimension) error
	// FindOrCreateDimension devuelve la dimensión existente o la crea; created indica cuál ocurrió.
	FindOrCreateDimension(ctx context.Context, productID, name string) (dim *entity.VariantDimension, created bool, err error)
	// CreateOption asigna ID y Position. ErrDuplicate si el valor ya existe en la dimensión.
	CreateOption(ctx context.Context, opt *entity.VariantOption) error
	FindOrCreateOption(ctx context.Context, dimensionID, value string) (*entity.VariantOption, error)
	// ListByProduct devuelve las dimensiones con sus opciones, ambas ordenadas por Position.
	ListByProduct(ctx context.Context, productID string) ([]*entity.VariantDimension, error)
}
